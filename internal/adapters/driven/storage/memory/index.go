package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.DocumentIndex = (*Index)(nil)

// Index is an in-memory implementation of driven.DocumentIndex.
// Documents are kept ordered by folder path.
type Index struct {
	mu   sync.RWMutex
	docs []domain.Document
}

// NewIndex creates a new in-memory index holding docs.
func NewIndex(docs ...domain.Document) *Index {
	idx := &Index{}
	idx.set(docs)
	return idx
}

// All returns every indexed document.
func (idx *Index) All(_ context.Context) ([]domain.Document, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]domain.Document(nil), idx.docs...), nil
}

// Search returns the documents matching a free-text query.
func (idx *Index) Search(_ context.Context, query string) ([]domain.Document, error) {
	q := domain.ParseQuery(query)
	return idx.collect(q.Matches), nil
}

// Filter returns the documents whose field contains value.
// papis_id is compared exactly.
func (idx *Index) Filter(_ context.Context, field, value string) ([]domain.Document, error) {
	if strings.EqualFold(field, domain.FieldPapisID) {
		return idx.collect(func(doc *domain.Document) bool {
			return doc.ID == value
		}), nil
	}
	q := domain.Query{Terms: []domain.QueryTerm{{Field: field, Value: value}}}
	return idx.collect(q.Matches), nil
}

// Replace swaps the indexed documents for docs.
func (idx *Index) Replace(_ context.Context, docs []domain.Document) error {
	idx.set(docs)
	return nil
}

// Close is a no-op for the memory index.
func (idx *Index) Close() error {
	return nil
}

func (idx *Index) set(docs []domain.Document) {
	sorted := append([]domain.Document(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.docs = sorted
}

func (idx *Index) collect(match func(*domain.Document) bool) []domain.Document {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var result []domain.Document
	for i := range idx.docs {
		if match(&idx.docs[i]) {
			result = append(result, idx.docs[i])
		}
	}
	return result
}
