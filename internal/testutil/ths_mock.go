package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
)

// MockTHSClient is a mock implementation of ths.Client for testing.
// It returns predefined responses per fund code instead of making network calls
// and is safe for concurrent use.
type MockTHSClient struct {
	mu sync.Mutex

	// Responses maps a fund code to the raw body to return.
	Responses map[string]string
	// Errors maps a fund code to the error to return.
	Errors map[string]error
	// Blocking lists codes whose query waits until its context is done.
	Blocking map[string]bool
	// DefaultResponse is returned for codes with no configured response.
	DefaultResponse string

	queries map[string]int
}

// NewMockTHSClient creates a mock that answers every code with a valid quote
// (prevNetValue 1.0, currentValuation 1.05).
func NewMockTHSClient() *MockTHSClient {
	return &MockTHSClient{
		Responses:       map[string]string{},
		Errors:          map[string]error{},
		Blocking:        map[string]bool{},
		DefaultResponse: CreateMockTHSResponse("2026-01-30", 1.0, 1.05),
		queries:         map[string]int{},
	}
}

// QueryValuation implements ths.Client.
func (m *MockTHSClient) QueryValuation(ctx context.Context, code string) (string, error) {
	m.mu.Lock()
	m.queries[code]++
	resp, hasResp := m.Responses[code]
	err := m.Errors[code]
	block := m.Blocking[code]
	def := m.DefaultResponse
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", fmt.Errorf("%w: %w", apperrors.ErrTransportFailure, ctx.Err())
	}
	if err != nil {
		return "", err
	}
	if hasResp {
		return resp, nil
	}
	return def, nil
}

// WithResponse configures the raw response returned for code.
func (m *MockTHSClient) WithResponse(code, raw string) *MockTHSClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[code] = raw
	return m
}

// WithQuote configures a well-formed response for code.
func (m *MockTHSClient) WithQuote(code string, prevNetValue, currentValuation float64) *MockTHSClient {
	return m.WithResponse(code, CreateMockTHSResponse("2026-01-30", prevNetValue, currentValuation))
}

// WithError configures the error returned for code.
func (m *MockTHSClient) WithError(code string, err error) *MockTHSClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[code] = err
	return m
}

// WithBlocking makes queries for code wait until their context expires,
// simulating a provider timeout.
func (m *MockTHSClient) WithBlocking(code string) *MockTHSClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Blocking[code] = true
	return m
}

// QueryCount returns how many times code was queried.
func (m *MockTHSClient) QueryCount(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries[code]
}

// TotalQueryCount returns the number of queries across all codes.
func (m *MockTHSClient) TotalQueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.queries {
		total += n
	}
	return total
}

// CreateMockTHSResponse builds a chart response with one opening tick at the
// previous net value and a closing tick at currentValuation.
func CreateMockTHSResponse(date string, prevNetValue, currentValuation float64) string {
	return fmt.Sprintf(
		"vm_fd_000000='x|%s~%g~0930,0931,%g,%g,0.000;1500,%g,%g,0.000'",
		date, prevNetValue, prevNetValue, prevNetValue, currentValuation, prevNetValue,
	)
}
