package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/validation"
)

// StatusClientClosedRequest is the non-standard status reported when the
// client went away before a valuation run finished.
const StatusClientClosedRequest = 499

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are ignored so the
// web client can post back full records.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// respondValidationError writes a 400 with per-field details when err is a validation.Error.
func respondValidationError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

// respondValuationError maps a failed valuation run to a status code.
func respondValuationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		response.RespondError(w, StatusClientClosedRequest, "request cancelled", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		response.RespondError(w, http.StatusServiceUnavailable, "valuation timed out", err.Error())
	case errors.Is(err, apperrors.ErrRecognitionFailure):
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrRecognitionFailure.Error(), err.Error())
	case errors.Is(err, apperrors.ErrFailedToRetrieveHoldings),
		errors.Is(err, apperrors.ErrFailedToRecordSnapshots):
		response.RespondError(w, http.StatusInternalServerError, "storage failure", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToValuate.Error(), err.Error())
	}
}
