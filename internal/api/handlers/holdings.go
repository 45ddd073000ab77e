package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/service"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/validation"
)

// HoldingsHandler handles HTTP requests for the saved holding list.
type HoldingsHandler struct {
	watchlistService *service.WatchlistService
}

// NewHoldingsHandler creates a new HoldingsHandler with the provided service dependency.
func NewHoldingsHandler(watchlistService *service.WatchlistService) *HoldingsHandler {
	return &HoldingsHandler{
		watchlistService: watchlistService,
	}
}

// Holdings handles GET requests to retrieve the saved list.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with array of HoldingRecord
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingsHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.watchlistService.Holdings(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// SaveHoldings handles PUT requests that replace the saved list.
//
// Endpoint: PUT /api/holdings
// Request: [{"name": "...", "code": "163406", "amount": 5000, "holdProfit": 12.3}]
// Response: 200 OK with the saved array of HoldingRecord
// Error: 400 Bad Request if any item is invalid, 500 if saving fails
func (h *HoldingsHandler) SaveHoldings(w http.ResponseWriter, r *http.Request) {
	items, err := parseJSON[[]request.HoldingItem](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateHoldingItems(items); err != nil {
		respondValidationError(w, err)
		return
	}

	saved, err := h.watchlistService.SaveHoldings(r.Context(), request.Drafts(items))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, saved)
}

// RefreshHoldings handles POST requests that valuate the saved list and record snapshots.
//
// Endpoint: POST /api/holdings/refresh
// Response: 200 OK with ValuationResponse
// Error: 500 Internal Server Error if storage fails, 499/503 if the run is cut short
func (h *HoldingsHandler) RefreshHoldings(w http.ResponseWriter, r *http.Request) {
	resp, err := h.watchlistService.RefreshSaved(r.Context())
	if err != nil {
		respondValuationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Snapshots handles GET requests for the recorded valuation history of one fund.
//
// Endpoint: GET /api/holdings/{code}/snapshots?limit=N
// Response: 200 OK with array of Snapshot, newest first
// Error: 400 Bad Request if limit is out of range, 500 if retrieval fails
func (h *HoldingsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	limit, err := validation.ParseSnapshotLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondValidationError(w, err)
		return
	}

	snapshots, err := h.watchlistService.Snapshots(r.Context(), code, limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}
