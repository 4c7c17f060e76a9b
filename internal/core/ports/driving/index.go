package driving

import "context"

// IndexService keeps the document index in sync with the libraries.
type IndexService interface {
	// Reindex scans the libraries and replaces the index contents.
	// Returns the number of indexed documents.
	Reindex(ctx context.Context) (int, error)

	// Watch reindexes on library changes until ctx is cancelled.
	Watch(ctx context.Context) error
}
