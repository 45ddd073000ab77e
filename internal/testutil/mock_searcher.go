package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
)

// MockSearcher is a mock fund name searcher returning predefined matches.
type MockSearcher struct {
	mu      sync.Mutex
	results map[string][2]string
	err     error
	calls   []string
}

// NewMockSearcher creates a searcher with no known names.
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{results: map[string][2]string{}}
}

// WithFund registers keyword as resolving to code and name.
func (m *MockSearcher) WithFund(keyword, code, name string) *MockSearcher {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[keyword] = [2]string{code, name}
	return m
}

// WithError makes every search fail with err.
func (m *MockSearcher) WithError(err error) *MockSearcher {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// SearchFund implements extract.NameSearcher.
func (m *MockSearcher) SearchFund(_ context.Context, keyword string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, keyword)
	if m.err != nil {
		return "", "", m.err
	}
	if r, ok := m.results[keyword]; ok {
		return r[0], r[1], nil
	}
	return "", "", apperrors.ErrFundNotFound
}

// Calls returns the keywords searched so far.
func (m *MockSearcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
