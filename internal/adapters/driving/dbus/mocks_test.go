package dbus

import (
	"context"
	"sync"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
)

// mockSearchProvider records calls for testing.
type mockSearchProvider struct {
	mu sync.Mutex

	results []string
	metas   []domain.ResultMeta

	terms     []domain.SearchTerms
	previous  [][]string
	activated []string
	launched  int
}

func (m *mockSearchProvider) InitialResultSet(_ context.Context, terms domain.SearchTerms) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terms = append(m.terms, terms)
	return m.results
}

func (m *mockSearchProvider) SubsearchResultSet(_ context.Context, previous []string, terms domain.SearchTerms) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.previous = append(m.previous, previous)
	m.terms = append(m.terms, terms)
	return m.results
}

func (m *mockSearchProvider) ResultMetas(_ context.Context, ids []string) []domain.ResultMeta {
	if m.metas != nil {
		return m.metas
	}
	out := make([]domain.ResultMeta, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.ResultMeta{ID: id})
	}
	return out
}

func (m *mockSearchProvider) ActivateResult(_ context.Context, id string, _ domain.SearchTerms, _ uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activated = append(m.activated, id)
}

func (m *mockSearchProvider) LaunchSearch(_ context.Context, _ domain.SearchTerms, _ uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launched++
}

func strPtr(s string) *string { return &s }
