package model

import "strings"

// ValuationQuote is one parsed provider response for a single fund.
//
// Fields:
//   - PrevNetValue: previous trading day's settled net value per share
//   - CurrentValuation: latest intraday estimated value, or PrevNetValue when no tick is available
//   - ChangePct: (CurrentValuation - PrevNetValue) / PrevNetValue * 100
//   - Date: settlement date from the response header (e.g. "2026-01-30")
//   - Time: time of the latest intraday tick (e.g. "1500"), empty when no tick was present
type ValuationQuote struct {
	PrevNetValue     float64 `json:"prevNetValue"`
	CurrentValuation float64 `json:"currentValuation"`
	ChangePct        float64 `json:"changePct"`
	Date             string  `json:"date,omitempty"`
	Time             string  `json:"time,omitempty"`
}

// Timestamp joins Date and Time for display. A quote without an intraday tick
// is labelled with "实时" the way the provider's own pages do.
func (q ValuationQuote) Timestamp() string {
	if q.Date == "" {
		return ""
	}
	t := q.Time
	if t == "" {
		t = "实时"
	}
	return strings.TrimSpace(q.Date + " " + t)
}
