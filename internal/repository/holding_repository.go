package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
)

// HoldingRepository provides data access for the saved holding list.
type HoldingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// WithTx returns a new HoldingRepository scoped to the provided transaction.
func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *HoldingRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetHoldings returns the saved holdings in the order they were saved.
// Valuation fields are set to their defaults; the saved list carries no quotes.
func (r *HoldingRepository) GetHoldings(ctx context.Context) ([]model.HoldingRecord, error) {
	query := `
		SELECT code, name, amount, hold_profit
		FROM holding
		ORDER BY position ASC, code ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.HoldingRecord{}
	for rows.Next() {
		var code, name string
		var amount, holdProfit float64
		if err := rows.Scan(&code, &name, &amount, &holdProfit); err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		h := model.NewDraft(name, code)
		h.HoldingAmount = amount
		h.HoldProfit = holdProfit
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// ReplaceHoldings replaces the whole saved list with holdings in a single transaction.
func (r *HoldingRepository) ReplaceHoldings(ctx context.Context, holdings []model.HoldingRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	q := r.WithTx(tx).getQuerier()

	if _, err := q.ExecContext(ctx, `DELETE FROM holding`); err != nil {
		return fmt.Errorf("failed to clear holding table: %w", err)
	}

	query := `
		INSERT INTO holding (code, name, amount, hold_profit, position, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			amount = excluded.amount,
			hold_profit = excluded.hold_profit,
			position = excluded.position,
			updated_at = excluded.updated_at
	`
	now := FormatTime(time.Now())
	for i, h := range holdings {
		if _, err := q.ExecContext(ctx, query, h.Code, h.Name, h.HoldingAmount, h.HoldProfit, i, now); err != nil {
			return fmt.Errorf("failed to insert holding %s: %w", h.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit holdings: %w", err)
	}
	return nil
}
