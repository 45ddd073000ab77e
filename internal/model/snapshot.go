package model

import "time"

// Snapshot is one persisted valuation of a saved holding, recorded by a refresh run.
type Snapshot struct {
	ID               string    `json:"id"`
	RunID            string    `json:"runId"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	TakenAt          time.Time `json:"takenAt"`
	HoldingAmount    float64   `json:"amount"`
	PrevNetValue     float64   `json:"prevNetValue"`
	CurrentValuation float64   `json:"currentValuation"`
	RealtimeChange   float64   `json:"realtimeChange"`
	RealtimeProfit   float64   `json:"realtimeProfit"`
	Status           string    `json:"status"`
}

// ValuationResponse is the envelope returned by the resolve, refresh and recognize endpoints.
type ValuationResponse struct {
	Lines   []string        `json:"lines,omitempty"`
	Data    []HoldingRecord `json:"data"`
	Summary Summary         `json:"summary"`
}
