package service

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/ths"
)

// Defaults for ValuationOptions.
const (
	DefaultFetchTimeout   = 10 * time.Second
	DefaultMaxConcurrency = 20
)

// ValuationOptions tunes the fan-out of a valuation run.
type ValuationOptions struct {
	// FetchTimeout bounds each individual provider request.
	FetchTimeout time.Duration
	// MaxConcurrency caps the number of in-flight requests.
	MaxConcurrency int
}

// ValuationService enriches draft holdings with live provider quotes.
type ValuationService struct {
	client ths.Client
	opts   ValuationOptions
}

// NewValuationService creates a ValuationService. Zero option fields take their defaults.
func NewValuationService(client ths.Client, opts ValuationOptions) *ValuationService {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	return &ValuationService{client: client, opts: opts}
}

// Valuate fetches one quote per distinct fund code and merges it into the records.
//
// Behaviour:
//   - Drafts sharing a code are collapsed; the later draft wins and keeps the
//     position of the first one.
//   - Fetches run concurrently, each writing only its own result slot.
//   - A fund whose fetch or parse fails keeps its default valuation fields and
//     is marked partial. Such failures are logged and never fail the run.
//   - The result is stable-sorted by holding amount, largest first.
//
// The only error returned is ctx's, when the run is cancelled; partial results
// are discarded in that case.
func (s *ValuationService) Valuate(ctx context.Context, drafts []model.HoldingRecord) ([]model.HoldingRecord, error) {
	records := dedupeByCode(drafts)
	if len(records) == 0 {
		return []model.HoldingRecord{}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(len(records), s.opts.MaxConcurrency))

	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = s.valuateOne(gctx, records[i])
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].HoldingAmount > records[j].HoldingAmount
	})

	return records, nil
}

// valuateOne fetches and applies a quote for a single record.
func (s *ValuationService) valuateOne(ctx context.Context, rec model.HoldingRecord) model.HoldingRecord {
	fctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	raw, err := s.client.QueryValuation(fctx, rec.Code)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("valuation: %s: %v", rec.Code, err)
		}
		rec.Status = model.StatusPartial
		return rec
	}

	quote, err := ths.ParseQuote(raw)
	if err != nil {
		log.Printf("valuation: %s: %v", rec.Code, err)
		rec.Status = model.StatusPartial
		return rec
	}

	rec.ApplyQuote(quote)
	return rec
}

// dedupeByCode collapses drafts by code into a fresh slice.
func dedupeByCode(drafts []model.HoldingRecord) []model.HoldingRecord {
	index := make(map[string]int, len(drafts))
	out := make([]model.HoldingRecord, 0, len(drafts))

	for _, d := range drafts {
		if i, ok := index[d.Code]; ok {
			out[i] = d
			continue
		}
		index[d.Code] = len(out)
		out = append(out, d)
	}

	return out
}
