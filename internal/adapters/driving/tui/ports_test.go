package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
)

// MockSession implements driving.SearchSession for testing.
type MockSession struct {
	mu      sync.Mutex
	view    domain.SearchView
	queries []string
	updates chan domain.SearchView
	closed  bool
}

func newMockSession(view domain.SearchView) *MockSession {
	return &MockSession{view: view, updates: make(chan domain.SearchView, 1)}
}

func (m *MockSession) View() domain.SearchView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

func (m *MockSession) SetQuery(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
}

func (m *MockSession) Subscribe(func(domain.SearchView)) func() {
	return func() {}
}

func (m *MockSession) Updates() <-chan domain.SearchView {
	return m.updates
}

func (m *MockSession) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.updates)
	}
}

func (m *MockSession) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

func (m *MockSession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	Session *MockSession
	Err     error
	opened  int
}

func (m *MockSearchService) Search(_ context.Context, query string) (driving.SearchSession, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.opened++
	if m.Session == nil {
		m.Session = newMockSession(domain.SearchView{Query: query, State: domain.SearchStateReady})
	}
	return m.Session, nil
}

func (m *MockSearchService) Find(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
	return nil, m.Err
}

// MockSourceService implements driving.SourceService for testing.
type MockSourceService struct {
	CountsMap  map[domain.ContentType]int
	RefreshErr error
}

func (m *MockSourceService) Counts(context.Context) (map[domain.ContentType]int, error) {
	return m.CountsMap, nil
}

func (m *MockSourceService) Refresh(context.Context) error {
	return m.RefreshErr
}

func TestNewPorts(t *testing.T) {
	search := &MockSearchService{}
	source := &MockSourceService{}

	ports := NewPorts(search, source)

	require.NotNil(t, ports)
	assert.Equal(t, search, ports.Search)
	assert.Equal(t, source, ports.Source)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"all set", &Ports{Search: &MockSearchService{}, Source: &MockSourceService{}}, nil},
		{"source optional", &Ports{Search: &MockSearchService{}}, nil},
		{"missing search", &Ports{Source: &MockSourceService{}}, ErrMissingSearchService},
		{"nil ports", nil, ErrInvalidPorts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
