package services

import (
	"context"
	"sync"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
)

// mockLibrary implements driven.DocumentIndex for testing.
type mockLibrary struct {
	mu sync.Mutex

	all       []domain.Document
	search    map[string][]domain.Document
	byID      map[string][]domain.Document
	allErr    error
	searchErr error
	filterErr error

	replaced   []domain.Document
	replaceErr error

	queries []string
	filters []string
}

func (m *mockLibrary) All(_ context.Context) ([]domain.Document, error) {
	return m.all, m.allErr
}

func (m *mockLibrary) Search(_ context.Context, query string) ([]domain.Document, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.search[query], nil
}

func (m *mockLibrary) Filter(_ context.Context, field, value string) ([]domain.Document, error) {
	m.mu.Lock()
	m.filters = append(m.filters, field+"="+value)
	m.mu.Unlock()
	if m.filterErr != nil {
		return nil, m.filterErr
	}
	return m.byID[value], nil
}

func (m *mockLibrary) Replace(_ context.Context, docs []domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = docs
	return nil
}

func (m *mockLibrary) Close() error {
	return nil
}

func (m *mockLibrary) replacedDocs() []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaced
}

// mockOpener implements driven.FileOpener for testing.
type mockOpener struct {
	opened []string
	err    error
}

func (m *mockOpener) Open(path string) error {
	m.opened = append(m.opened, path)
	return m.err
}

// mockNotificationService implements driven.NotificationService for testing.
type mockNotificationService struct {
	sent []domain.Notification
	err  error
}

func (m *mockNotificationService) Notify(_ context.Context, n domain.Notification) (uint32, error) {
	m.sent = append(m.sent, n)
	if m.err != nil {
		return 0, m.err
	}
	return uint32(len(m.sent)), nil
}

// mockNotifier implements driving.Notifier for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	errors   []bool
}

func (m *mockNotifier) Notify(_ context.Context, message, _ string, isError bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	m.errors = append(m.errors, isError)
}

// mockScanner implements driven.LibraryScanner for testing.
type mockScanner struct {
	mu    sync.Mutex
	docs  []domain.Document
	err   error
	calls int
}

func (m *mockScanner) Scan(_ context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.docs, m.err
}

func (m *mockScanner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockWatcher implements driven.LibraryWatcher for testing.
type mockWatcher struct {
	changes chan domain.LibraryChange
	errs    chan error
	err     error
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{
		changes: make(chan domain.LibraryChange, 16),
		errs:    make(chan error, 1),
	}
}

func (m *mockWatcher) Watch(_ context.Context) (<-chan domain.LibraryChange, <-chan error, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.changes, m.errs, nil
}

func strPtr(s string) *string { return &s }
