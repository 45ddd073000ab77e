package model

import (
	"github.com/shopspring/decimal"
)

// Valuation status values reported per record.
const (
	// StatusPending marks a draft record that has not been through valuation yet.
	StatusPending = "pending"
	// StatusSuccess marks a record enriched with a live quote.
	StatusSuccess = "success"
	// StatusPartial marks a record that was kept with default figures because its quote could not be obtained.
	StatusPartial = "partial"
)

// HoldingRecord represents a single fund position.
// Code is the identity key. Valuation fields default to a neutral quote
// (PrevNetValue = CurrentValuation = 1, no change, no profit) until ApplyQuote is called.
type HoldingRecord struct {
	Name             string  `json:"name"`
	Code             string  `json:"code"`
	HoldingAmount    float64 `json:"amount"`
	HoldProfit       float64 `json:"holdProfit"`
	PrevNetValue     float64 `json:"prevNetValue"`
	CurrentValuation float64 `json:"currentValuation"`
	RealtimeChange   float64 `json:"realtimeChange"`
	RealtimeProfit   float64 `json:"realtimeProfit"`
	Status           string  `json:"status,omitempty"`
	ValuationTime    string  `json:"valuationTime,omitempty"`
}

// NewDraft creates a record with default valuation fields.
func NewDraft(name, code string) HoldingRecord {
	return HoldingRecord{
		Name:             name,
		Code:             code,
		PrevNetValue:     1.0,
		CurrentValuation: 1.0,
		Status:           StatusPending,
	}
}

// ApplyQuote merges a quote into the record and derives the realtime profit.
//
// The implicit share count is HoldingAmount / PrevNetValue, i.e. the holding is
// assumed to have been valued at the previous net value. Quotes produced by the
// parser never carry a zero PrevNetValue.
func (h *HoldingRecord) ApplyQuote(q ValuationQuote) {
	h.PrevNetValue = q.PrevNetValue
	h.CurrentValuation = q.CurrentValuation
	h.RealtimeChange = q.ChangePct
	h.RealtimeProfit = 0
	if h.HoldingAmount > 0 && q.PrevNetValue != 0 {
		shares := h.HoldingAmount / q.PrevNetValue
		h.RealtimeProfit = shares * (q.CurrentValuation - q.PrevNetValue)
	}
	h.ValuationTime = q.Timestamp()
	h.Status = StatusSuccess
}

// ChangeString formats the realtime change as a signed percentage, e.g. "+1.23%".
func (h HoldingRecord) ChangeString() string {
	return FormatSigned(h.RealtimeChange) + "%"
}

// ProfitString formats the realtime profit as a signed amount, e.g. "+45.60".
func (h HoldingRecord) ProfitString() string {
	return FormatSigned(h.RealtimeProfit)
}

// FormatSigned renders v with two decimals and an explicit "+" for values >= 0.
func FormatSigned(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	s := d.StringFixed(2)
	if !d.IsNegative() {
		return "+" + s
	}
	return s
}

// FormatAmount renders v with two decimals and no sign prefix.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
