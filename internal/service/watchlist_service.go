package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/repository"
)

// WatchlistService stores the web client's holding list and records valuation
// snapshots each time the saved list is refreshed.
type WatchlistService struct {
	holdingRepo  *repository.HoldingRepository
	snapshotRepo *repository.SnapshotRepository
	holdings     *HoldingService
	now          func() time.Time
}

// NewWatchlistService creates a WatchlistService.
func NewWatchlistService(
	holdingRepo *repository.HoldingRepository,
	snapshotRepo *repository.SnapshotRepository,
	holdings *HoldingService,
) *WatchlistService {
	return &WatchlistService{
		holdingRepo:  holdingRepo,
		snapshotRepo: snapshotRepo,
		holdings:     holdings,
		now:          time.Now,
	}
}

// Holdings returns the saved list.
func (s *WatchlistService) Holdings(ctx context.Context) ([]model.HoldingRecord, error) {
	holdings, err := s.holdingRepo.GetHoldings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHoldings, err)
	}
	return holdings, nil
}

// SaveHoldings replaces the saved list. Only identity, amount and hold profit are kept.
func (s *WatchlistService) SaveHoldings(ctx context.Context, holdings []model.HoldingRecord) ([]model.HoldingRecord, error) {
	if err := s.holdingRepo.ReplaceHoldings(ctx, dedupeByCode(holdings)); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveHoldings, err)
	}
	return s.Holdings(ctx)
}

// RefreshSaved valuates the saved list and records a snapshot of every holding.
func (s *WatchlistService) RefreshSaved(ctx context.Context) (model.ValuationResponse, error) {
	holdings, err := s.Holdings(ctx)
	if err != nil {
		return model.ValuationResponse{}, err
	}

	resp, err := s.holdings.Refresh(ctx, holdings)
	if err != nil {
		return model.ValuationResponse{}, err
	}

	if _, err := s.snapshotRepo.InsertSnapshots(ctx, s.now(), resp.Data); err != nil {
		return model.ValuationResponse{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRecordSnapshots, err)
	}

	return resp, nil
}

// Snapshots returns the most recent snapshots recorded for code.
func (s *WatchlistService) Snapshots(ctx context.Context, code string, limit int) ([]model.Snapshot, error) {
	snapshots, err := s.snapshotRepo.GetSnapshots(ctx, code, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSnapshots, err)
	}
	return snapshots, nil
}
