package mcp

import (
	"context"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
)

// mockSearchProvider is a mock implementation of driving.SearchProvider.
type mockSearchProvider struct {
	ids       []string
	docs      map[string]domain.ResultMeta
	terms     []domain.SearchTerms
	activated []string
}

func (m *mockSearchProvider) InitialResultSet(_ context.Context, terms domain.SearchTerms) []string {
	m.terms = append(m.terms, terms)
	if m.ids == nil {
		return []string{}
	}
	return m.ids
}

func (m *mockSearchProvider) SubsearchResultSet(ctx context.Context, _ []string, terms domain.SearchTerms) []string {
	return m.InitialResultSet(ctx, terms)
}

func (m *mockSearchProvider) ResultMetas(_ context.Context, ids []string) []domain.ResultMeta {
	out := make([]domain.ResultMeta, 0, len(ids))
	for _, id := range ids {
		if meta, ok := m.docs[id]; ok {
			out = append(out, meta)
			continue
		}
		out = append(out, domain.ResultMeta{ID: id})
	}
	return out
}

func (m *mockSearchProvider) ActivateResult(_ context.Context, id string, _ domain.SearchTerms, _ uint32) {
	m.activated = append(m.activated, id)
}

func (m *mockSearchProvider) LaunchSearch(_ context.Context, _ domain.SearchTerms, _ uint32) {}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	count int
	err   error
	calls int
}

func (m *mockIndexService) Reindex(_ context.Context) (int, error) {
	m.calls++
	return m.count, m.err
}

func (m *mockIndexService) Watch(_ context.Context) error {
	return nil
}

func strPtr(s string) *string { return &s }

func newLibraryProvider() *mockSearchProvider {
	return &mockSearchProvider{
		ids: []string{"lecun2015", "vaswani2017", "noabstract"},
		docs: map[string]domain.ResultMeta{
			"lecun2015":   {ID: "lecun2015", Name: strPtr("Deep Learning"), Description: strPtr("Deep learning allows...")},
			"vaswani2017": {ID: "vaswani2017", Name: strPtr("Attention Is All You Need")},
			"noabstract":  {ID: "noabstract", Name: strPtr("No Abstract")},
		},
	}
}
