package request

import (
	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/ocr"
)

// ResolveRequest carries pasted "<name-or-code> <amount>" lines.
type ResolveRequest struct {
	Text string `json:"text"`
}

// RecognizeRequest carries text fragments recognized on the client.
type RecognizeRequest struct {
	Fragments []ocr.TextFragment `json:"fragments"`
}

// HoldingItem is one holding as sent by the web client.
type HoldingItem struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Amount     float64 `json:"amount"`
	HoldProfit float64 `json:"holdProfit"`
}

// Draft converts the item into a draft record. An empty name falls back to "基金(<code>)".
func (h HoldingItem) Draft() model.HoldingRecord {
	name := h.Name
	if name == "" {
		name = "基金(" + h.Code + ")"
	}
	rec := model.NewDraft(name, h.Code)
	rec.HoldingAmount = h.Amount
	rec.HoldProfit = h.HoldProfit
	return rec
}

// Drafts converts every item into a draft record, keeping order.
func Drafts(items []HoldingItem) []model.HoldingRecord {
	out := make([]model.HoldingRecord, 0, len(items))
	for _, item := range items {
		out = append(out, item.Draft())
	}
	return out
}
