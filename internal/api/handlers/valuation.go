package handlers

import (
	"net/http"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/service"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/validation"
)

// ValuationHandler handles the stateless extraction and valuation endpoints.
type ValuationHandler struct {
	holdingService *service.HoldingService
}

// NewValuationHandler creates a new ValuationHandler with the provided service dependency.
func NewValuationHandler(holdingService *service.HoldingService) *ValuationHandler {
	return &ValuationHandler{
		holdingService: holdingService,
	}
}

// Resolve handles POST requests carrying pasted holding lines.
//
// Endpoint: POST /api/resolve
// Request: {"text": "163406 5000\n博时黄金ETF联接A 1200"}
// Response: 200 OK with ValuationResponse
// Error: 400 Bad Request if text is empty
func (h *ValuationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ResolveRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateResolveRequest(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.holdingService.FromText(r.Context(), req.Text)
	if err != nil {
		respondValuationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Refresh handles POST requests that re-valuate a client-held list.
//
// Endpoint: POST /api/refresh
// Request: [{"name": "...", "code": "163406", "amount": 5000, "holdProfit": 12.3}]
// Response: 200 OK with ValuationResponse
// Error: 400 Bad Request if any item is invalid
func (h *ValuationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	items, err := parseJSON[[]request.HoldingItem](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateHoldingItems(items); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.holdingService.Refresh(r.Context(), request.Drafts(items))
	if err != nil {
		respondValuationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Recognize handles POST requests carrying OCR fragments recognized on the client.
//
// Endpoint: POST /api/recognize
// Request: {"fragments": [{"text": "...", "minX": 0.1, "maxX": 0.4, "midY": 0.8}]}
// Response: 200 OK with ValuationResponse including the clustered lines
// Error: 400 Bad Request if coordinates are not normalized
func (h *ValuationHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RecognizeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRecognizeRequest(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.holdingService.FromFragments(r.Context(), req.Fragments)
	if err != nil {
		respondValuationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, resp)
}
