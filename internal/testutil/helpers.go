package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/extract"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/registry"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/repository"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/service"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/ths"
)

// TestFetchTimeout is the per-fetch timeout used by test services. It keeps
// blocking mock fetches short.
const TestFetchTimeout = 100 * time.Millisecond

// NewTestSystemService creates a SystemService for testing.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// NewTestValuationService creates a ValuationService over client with a short fetch timeout.
func NewTestValuationService(t *testing.T, client ths.Client) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(client, service.ValuationOptions{
		FetchTimeout:   TestFetchTimeout,
		MaxConcurrency: 4,
	})
}

// NewTestHoldingService creates a HoldingService using the default registry,
// the max-amount policy and an optional searcher.
func NewTestHoldingService(t *testing.T, client ths.Client, searcher extract.NameSearcher) *service.HoldingService {
	t.Helper()

	reg := registry.Default()

	return service.NewHoldingService(
		extract.NewExtractor(reg, extract.MaxAmountPolicy{}),
		extract.NewTextParser(reg, searcher),
		NewTestValuationService(t, client),
	)
}

// NewTestWatchlistService creates a WatchlistService backed by db.
func NewTestWatchlistService(t *testing.T, db *sql.DB, client ths.Client) *service.WatchlistService {
	t.Helper()

	return service.NewWatchlistService(
		repository.NewHoldingRepository(db),
		repository.NewSnapshotRepository(db),
		NewTestHoldingService(t, client, nil),
	)
}
