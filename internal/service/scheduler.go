package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically refreshes the saved holdings on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	watchlist  *WatchlistService
	runTimeout time.Duration
}

// NewScheduler registers a refresh job for schedule (standard five-field cron syntax).
// runTimeout bounds each run.
func NewScheduler(schedule string, watchlist *WatchlistService, runTimeout time.Duration) (*Scheduler, error) {
	if runTimeout <= 0 {
		runTimeout = 2 * time.Minute
	}
	s := &Scheduler{
		cron:       cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default())))),
		watchlist:  watchlist,
		runTimeout: runTimeout,
	}
	if _, err := s.cron.AddFunc(schedule, s.Run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Run performs one refresh of the saved holdings. It is the scheduled job and
// may also be called directly.
func (s *Scheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	start := time.Now()
	resp, err := s.watchlist.RefreshSaved(ctx)
	if err != nil {
		log.Printf("scheduled refresh failed: %v", err)
		return
	}
	log.Printf(
		"scheduled refresh: %d holdings, %d valuated, realtime profit %s in %s",
		resp.Summary.Count,
		resp.Summary.Valuated,
		resp.Summary.RealtimeProfitDisplay,
		time.Since(start),
	)
}
