package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
)

// SnapshotRepository provides data access for recorded valuation snapshots.
type SnapshotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// WithTx returns a new SnapshotRepository scoped to the provided transaction.
func (r *SnapshotRepository) WithTx(tx *sql.Tx) *SnapshotRepository {
	return &SnapshotRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SnapshotRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertSnapshots records one snapshot row per record under a new run ID.
// Returns the run ID.
func (r *SnapshotRepository) InsertSnapshots(ctx context.Context, takenAt time.Time, records []model.HoldingRecord) (string, error) {
	runID := uuid.New().String()
	if len(records) == 0 {
		return runID, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	query := `
		INSERT INTO valuation_snapshot (
			id, run_id, code, name, taken_at, amount,
			prev_net_value, current_valuation, realtime_change, realtime_profit, status
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	q := r.WithTx(tx).getQuerier()
	for _, rec := range records {
		_, err := q.ExecContext(ctx, query,
			uuid.New().String(),
			runID,
			rec.Code,
			rec.Name,
			FormatTime(takenAt),
			rec.HoldingAmount,
			rec.PrevNetValue,
			rec.CurrentValuation,
			rec.RealtimeChange,
			rec.RealtimeProfit,
			rec.Status,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert snapshot for %s: %w", rec.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit snapshots: %w", err)
	}
	return runID, nil
}

// GetSnapshots returns the most recent snapshots for code, newest first.
func (r *SnapshotRepository) GetSnapshots(ctx context.Context, code string, limit int) ([]model.Snapshot, error) {
	query := `
		SELECT id, run_id, code, name, taken_at, amount,
			prev_net_value, current_valuation, realtime_change, realtime_profit, status
		FROM valuation_snapshot
		WHERE code = ?
		ORDER BY taken_at DESC, id ASC
		LIMIT ?
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, code, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.Snapshot{}
	for rows.Next() {
		var s model.Snapshot
		var takenAt string
		err := rows.Scan(
			&s.ID,
			&s.RunID,
			&s.Code,
			&s.Name,
			&takenAt,
			&s.HoldingAmount,
			&s.PrevNetValue,
			&s.CurrentValuation,
			&s.RealtimeChange,
			&s.RealtimeProfit,
			&s.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuation_snapshot results: %w", err)
		}
		if s.TakenAt, err = ParseTime(takenAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating valuation_snapshot table: %w", err)
	}

	return snapshots, nil
}
