package driven

import (
	"context"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
)

// DocumentLibrary answers queries over papis documents.
// Results are returned in store-defined order.
type DocumentLibrary interface {
	// All returns every document in the library.
	All(ctx context.Context) ([]domain.Document, error)

	// Search returns the documents matching a free-text query.
	Search(ctx context.Context, query string) ([]domain.Document, error)

	// Filter returns the documents whose field contains value.
	// For papis_id the comparison is exact.
	Filter(ctx context.Context, field, value string) ([]domain.Document, error)
}

// DocumentIndex is a DocumentLibrary that is rebuilt from scanned documents.
type DocumentIndex interface {
	DocumentLibrary

	// Replace atomically swaps the indexed documents for docs.
	Replace(ctx context.Context, docs []domain.Document) error

	// Close releases resources.
	Close() error
}

// LibraryScanner reads documents from the configured library folders.
type LibraryScanner interface {
	// Scan returns every document found in the libraries.
	Scan(ctx context.Context) ([]domain.Document, error)
}

// LibraryWatcher reports changes to library folders.
type LibraryWatcher interface {
	// Watch listens for changes until ctx is cancelled.
	// Both channels are closed when watching stops.
	Watch(ctx context.Context) (<-chan domain.LibraryChange, <-chan error, error)
}
