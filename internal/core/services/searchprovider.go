package services

import (
	"context"
	"fmt"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// Ensure SearchProviderService implements the interface.
var _ driving.SearchProvider = (*SearchProviderService)(nil)

// SearchProviderService translates shell search requests into library queries.
// It holds no state between calls; every request is resolved against the
// library independently.
type SearchProviderService struct {
	library driven.DocumentLibrary
	opener  driven.FileOpener
}

// NewSearchProviderService creates a new search provider service.
// The opener parameter is optional (can be nil), activation is then a no-op.
func NewSearchProviderService(library driven.DocumentLibrary, opener driven.FileOpener) *SearchProviderService {
	return &SearchProviderService{
		library: library,
		opener:  opener,
	}
}

// InitialResultSet returns the identifiers matching terms.
// Empty terms list the whole library. Library errors yield an empty set.
func (s *SearchProviderService) InitialResultSet(ctx context.Context, terms domain.SearchTerms) []string {
	logger.Section("GetInitialResultSet")
	logger.Debug("Terms: %q", []string(terms))

	docs, err := s.query(ctx, terms)
	if err != nil {
		logger.Warn("Search for %q failed: %v", terms.String(), err)
		return []string{}
	}

	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}

	logger.Debug("Results: %d", len(ids))
	return ids
}

// SubsearchResultSet re-runs the search with the new terms.
// The previous results are ignored.
func (s *SearchProviderService) SubsearchResultSet(
	ctx context.Context, _ []string, terms domain.SearchTerms,
) []string {
	return s.InitialResultSet(ctx, terms)
}

// ResultMetas returns one meta per identifier, in input order.
// Duplicates are resolved independently.
func (s *SearchProviderService) ResultMetas(ctx context.Context, ids []string) []domain.ResultMeta {
	logger.Section("GetResultMetas")

	metas := make([]domain.ResultMeta, len(ids))
	for i, id := range ids {
		doc, err := s.resolve(ctx, id)
		if err != nil {
			logger.Debug("Meta for %q without document: %v", id, err)
		}
		metas[i] = domain.NewResultMeta(id, doc)
	}
	return metas
}

// ActivateResult opens the first file of the identified document.
// Unknown identifiers and documents without files are ignored.
func (s *SearchProviderService) ActivateResult(
	ctx context.Context, id string, _ domain.SearchTerms, _ uint32,
) {
	logger.Section("ActivateResult")

	doc, err := s.resolve(ctx, id)
	if err != nil {
		logger.Debug("Activate %q: %v", id, err)
		return
	}

	file, ok := doc.FirstFile()
	if !ok {
		logger.Debug("Activate %q: document has no files", id)
		return
	}

	if s.opener == nil {
		logger.Debug("Activate %q: no file opener configured", id)
		return
	}

	logger.Info("Opening %s", file)
	if err := s.opener.Open(file); err != nil {
		logger.Debug("Open %s: %v", file, err)
	}
}

// LaunchSearch does nothing. The provider does not offer a full search UI.
func (s *SearchProviderService) LaunchSearch(_ context.Context, _ domain.SearchTerms, _ uint32) {}

// query runs terms against the library.
func (s *SearchProviderService) query(ctx context.Context, terms domain.SearchTerms) ([]domain.Document, error) {
	if s.library == nil {
		return nil, domain.ErrLibraryUnavailable
	}
	if terms.IsEmpty() {
		return s.library.All(ctx)
	}
	return s.library.Search(ctx, terms.String())
}

// resolve returns the single document with the given papis_id.
// Zero or several matches are reported as not found.
func (s *SearchProviderService) resolve(ctx context.Context, id string) (*domain.Document, error) {
	if s.library == nil {
		return nil, domain.ErrLibraryUnavailable
	}

	docs, err := s.library.Filter(ctx, domain.FieldPapisID, id)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", domain.FieldPapisID, err)
	}

	switch len(docs) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		return &docs[0], nil
	default:
		return nil, fmt.Errorf("%d documents with id %q: %w", len(docs), id, domain.ErrAmbiguous)
	}
}
