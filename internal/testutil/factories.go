package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/repository"
)

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	// Draft record only
//	h := testutil.NewHolding("163406").WithAmount(1000).Draft()
//
//	// Saved into the holding table
//	h := testutil.NewHolding("163406").WithName("兴全合润混合A").Build(t, db)
type HoldingBuilder struct {
	Name       string
	Code       string
	Amount     float64
	HoldProfit float64
	Position   int
}

// NewHolding creates a HoldingBuilder for code with sensible defaults.
func NewHolding(code string) *HoldingBuilder {
	return &HoldingBuilder{
		Name:   "基金(" + code + ")",
		Code:   code,
		Amount: 1000,
	}
}

// WithName sets a custom name.
func (b *HoldingBuilder) WithName(name string) *HoldingBuilder {
	b.Name = name
	return b
}

// WithAmount sets the holding amount.
func (b *HoldingBuilder) WithAmount(amount float64) *HoldingBuilder {
	b.Amount = amount
	return b
}

// WithHoldProfit sets the hold profit.
func (b *HoldingBuilder) WithHoldProfit(profit float64) *HoldingBuilder {
	b.HoldProfit = profit
	return b
}

// WithPosition sets the saved list position.
func (b *HoldingBuilder) WithPosition(position int) *HoldingBuilder {
	b.Position = position
	return b
}

// Draft returns the holding as a draft record with default valuation fields.
func (b *HoldingBuilder) Draft() model.HoldingRecord {
	h := model.NewDraft(b.Name, b.Code)
	h.HoldingAmount = b.Amount
	h.HoldProfit = b.HoldProfit
	return h
}

// Build inserts the holding into the holding table and returns it as a draft.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.HoldingRecord {
	t.Helper()

	query := `
		INSERT INTO holding (code, name, amount, hold_profit, position, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.Code, b.Name, b.Amount, b.HoldProfit, b.Position, repository.FormatTime(time.Now()))
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return b.Draft()
}

// Drafts builds one default draft per code, with amounts 1000, 2000, ...
func Drafts(codes ...string) []model.HoldingRecord {
	out := make([]model.HoldingRecord, 0, len(codes))
	for i, code := range codes {
		out = append(out, NewHolding(code).WithAmount(float64(i+1)*1000).Draft())
	}
	return out
}
