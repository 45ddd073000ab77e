package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/service"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/testutil"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestValuationService_Valuate covers the concurrent enrichment of draft holdings.
func TestValuationService_Valuate(t *testing.T) {
	t.Run("keeps timed out fund with defaults and sorts by amount", func(t *testing.T) {
		client := testutil.NewMockTHSClient().
			WithBlocking("000001").
			WithQuote("000002", 1.0, 1.05)
		svc := service.NewValuationService(client, service.ValuationOptions{
			FetchTimeout: 50 * time.Millisecond,
		})

		drafts := []model.HoldingRecord{
			testutil.NewHolding("000001").WithName("A").WithAmount(1000).Draft(),
			testutil.NewHolding("000002").WithName("B").WithAmount(2000).Draft(),
		}

		records, err := svc.Valuate(context.Background(), drafts)
		if err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}

		b, a := records[0], records[1]
		if b.Code != "000002" || a.Code != "000001" {
			t.Fatalf("Expected order [000002, 000001], got [%s, %s]", b.Code, a.Code)
		}

		if !approxEqual(b.RealtimeProfit, 100) {
			t.Errorf("Expected B profit 100, got %v", b.RealtimeProfit)
		}
		if b.Status != model.StatusSuccess {
			t.Errorf("Expected B status %q, got %q", model.StatusSuccess, b.Status)
		}

		if a.PrevNetValue != 1.0 || a.CurrentValuation != 1.0 || a.RealtimeChange != 0 || a.RealtimeProfit != 0 {
			t.Errorf("Expected A to keep default valuation fields, got %+v", a)
		}
		if a.Status != model.StatusPartial {
			t.Errorf("Expected A status %q, got %q", model.StatusPartial, a.Status)
		}
	})

	t.Run("returns empty slice for no drafts", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestValuationService(t, client)

		records, err := svc.Valuate(context.Background(), nil)
		if err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}
		if records == nil || len(records) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", records)
		}
		if client.TotalQueryCount() != 0 {
			t.Errorf("Expected no queries, got %d", client.TotalQueryCount())
		}
	})

	t.Run("collapses duplicate codes with later draft winning", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestValuationService(t, client)

		drafts := []model.HoldingRecord{
			testutil.NewHolding("163406").WithName("first").WithAmount(500).Draft(),
			testutil.NewHolding("000001").WithAmount(500).Draft(),
			testutil.NewHolding("163406").WithName("second").WithAmount(500).Draft(),
		}

		records, err := svc.Valuate(context.Background(), drafts)
		if err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		// Equal amounts keep first-seen order under the stable sort.
		if records[0].Code != "163406" || records[0].Name != "second" {
			t.Errorf("Expected later draft at first position, got %+v", records[0])
		}
		if client.QueryCount("163406") != 1 {
			t.Errorf("Expected 1 query for 163406, got %d", client.QueryCount("163406"))
		}
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestValuationService(t, client)

		drafts := testutil.Drafts("000001", "000002")
		if _, err := svc.Valuate(context.Background(), drafts); err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}

		for _, d := range drafts {
			if d.Status != model.StatusPending {
				t.Errorf("Expected input draft %s to stay pending, got %q", d.Code, d.Status)
			}
		}
	})

	t.Run("marks transport and parse failures partial", func(t *testing.T) {
		client := testutil.NewMockTHSClient().
			WithError("000001", fmt.Errorf("%w: connection refused", apperrors.ErrTransportFailure)).
			WithResponse("000002", "no separators here").
			WithResponse("000003", "x|2026-01-30~0~0930,0931,1,1,0.000")
		svc := testutil.NewTestValuationService(t, client)

		records, err := svc.Valuate(context.Background(), testutil.Drafts("000001", "000002", "000003", "000004"))
		if err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}

		if len(records) != 4 {
			t.Fatalf("Expected 4 records, got %d", len(records))
		}

		for _, r := range records {
			want := model.StatusPartial
			if r.Code == "000004" {
				want = model.StatusSuccess
			}
			if r.Status != want {
				t.Errorf("Expected %s status %q, got %q", r.Code, want, r.Status)
			}
		}
	})

	t.Run("non-finite net value fails only that fund", func(t *testing.T) {
		client := testutil.NewMockTHSClient().
			WithResponse("000001", "x|2026-01-30~NaN~0930").
			WithResponse("000002", "x|2026-01-30~Inf~0930,0931,1.1,1.0,0.000").
			WithQuote("000003", 1.0, 1.1)
		svc := testutil.NewTestHoldingService(t, client, nil)

		resp, err := svc.Refresh(context.Background(), testutil.Drafts("000001", "000002", "000003"))
		if err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}

		records := byCode(resp.Data)
		for _, code := range []string{"000001", "000002"} {
			r := records[code]
			if r.Status != model.StatusPartial || r.PrevNetValue != 1.0 || r.RealtimeProfit != 0 {
				t.Errorf("Expected %s to keep defaults as partial, got %+v", code, r)
			}
		}
		if r := records["000003"]; r.Status != model.StatusSuccess {
			t.Errorf("Expected 000003 to succeed, got %+v", r)
		}
		if resp.Summary.Valuated != 1 {
			t.Errorf("Expected 1 valuated record, got %d", resp.Summary.Valuated)
		}
	})

	t.Run("profit is zero when valuation is unchanged", func(t *testing.T) {
		client := testutil.NewMockTHSClient().WithQuote("000001", 1.5, 1.5)
		svc := testutil.NewTestValuationService(t, client)

		records, err := svc.Valuate(context.Background(), testutil.Drafts("000001"))
		if err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}
		if records[0].RealtimeProfit != 0 {
			t.Errorf("Expected zero profit, got %v", records[0].RealtimeProfit)
		}
	})

	t.Run("profit sign follows valuation change", func(t *testing.T) {
		client := testutil.NewMockTHSClient().
			WithQuote("000001", 2.0, 1.9).
			WithQuote("000002", 2.0, 2.1)
		svc := testutil.NewTestValuationService(t, client)

		records, err := svc.Valuate(context.Background(), testutil.Drafts("000001", "000002"))
		if err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}

		for _, r := range records {
			switch r.Code {
			case "000001":
				if r.RealtimeProfit >= 0 || r.RealtimeChange >= 0 {
					t.Errorf("Expected negative change and profit, got %+v", r)
				}
			case "000002":
				if r.RealtimeProfit <= 0 || r.RealtimeChange <= 0 {
					t.Errorf("Expected positive change and profit, got %+v", r)
				}
			}
		}
	})

	t.Run("zero amount yields zero profit", func(t *testing.T) {
		client := testutil.NewMockTHSClient().WithQuote("000001", 1.0, 1.2)
		svc := testutil.NewTestValuationService(t, client)

		drafts := []model.HoldingRecord{testutil.NewHolding("000001").WithAmount(0).Draft()}
		records, err := svc.Valuate(context.Background(), drafts)
		if err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}
		if records[0].RealtimeProfit != 0 {
			t.Errorf("Expected zero profit, got %v", records[0].RealtimeProfit)
		}
		if records[0].Status != model.StatusSuccess {
			t.Errorf("Expected success, got %q", records[0].Status)
		}
	})

	t.Run("returns context error when cancelled before start", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestValuationService(t, client)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		records, err := svc.Valuate(ctx, testutil.Drafts("000001", "000002"))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
		if records != nil {
			t.Errorf("Expected nil records, got %v", records)
		}
		if client.TotalQueryCount() != 0 {
			t.Errorf("Expected no queries, got %d", client.TotalQueryCount())
		}
	})

	t.Run("discards results when cancelled mid-run", func(t *testing.T) {
		client := testutil.NewMockTHSClient().WithBlocking("000001")
		svc := service.NewValuationService(client, service.ValuationOptions{
			FetchTimeout: 5 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		records, err := svc.Valuate(ctx, testutil.Drafts("000001", "000002"))
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Expected context.DeadlineExceeded, got %v", err)
		}
		if records != nil {
			t.Errorf("Expected nil records, got %v", records)
		}
	})

	t.Run("bounds in-flight fetches", func(t *testing.T) {
		client := &countingClient{delay: 20 * time.Millisecond}
		svc := service.NewValuationService(client, service.ValuationOptions{MaxConcurrency: 2})

		codes := []string{"000001", "000002", "000003", "000004", "000005", "000006"}
		records, err := svc.Valuate(context.Background(), testutil.Drafts(codes...))
		if err != nil {
			t.Fatalf("Valuate() returned unexpected error: %v", err)
		}
		if len(records) != len(codes) {
			t.Fatalf("Expected %d records, got %d", len(codes), len(records))
		}
		if peak := client.Peak(); peak > 2 {
			t.Errorf("Expected at most 2 concurrent fetches, got %d", peak)
		}
	})
}

// countingClient records the peak number of concurrent queries.
type countingClient struct {
	delay time.Duration

	mu       sync.Mutex
	inFlight int
	peak     int
}

func (c *countingClient) QueryValuation(ctx context.Context, _ string) (string, error) {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.peak {
		c.peak = c.inFlight
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return testutil.CreateMockTHSResponse("2026-01-30", 1.0, 1.01), nil
}

func (c *countingClient) Peak() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peak
}
