package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
)

func ValidateResolveRequest(req request.ResolveRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return &Error{Fields: map[string]string{"text": apperrors.ErrEmptyText.Error()}}
	}
	return nil
}

// ValidateHoldingItems checks every item of a refresh or save request.
// Field keys are indexed, e.g. "[2].code".
func ValidateHoldingItems(items []request.HoldingItem) error {
	errors := make(map[string]string)

	for i, item := range items {
		if err := ValidateFundCode(item.Code); err != nil {
			errors[fmt.Sprintf("[%d].code", i)] = apperrors.ErrInvalidFundCode.Error()
		}
		if item.Amount < 0 {
			errors[fmt.Sprintf("[%d].amount", i)] = apperrors.ErrNegativeAmount.Error()
		}
		if len(item.Name) > 100 {
			errors[fmt.Sprintf("[%d].name", i)] = "name must be 100 characters or less"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateRecognizeRequest checks that fragment coordinates are normalized.
func ValidateRecognizeRequest(req request.RecognizeRequest) error {
	errors := make(map[string]string)

	for i, f := range req.Fragments {
		if f.MidY < 0 || f.MidY > 1 {
			errors[fmt.Sprintf("fragments[%d].midY", i)] = "midY must be between 0 and 1"
		}
		if f.MinX < 0 || f.MinX > 1 || f.MaxX < 0 || f.MaxX > 1 {
			errors[fmt.Sprintf("fragments[%d].minX", i)] = "minX and maxX must be between 0 and 1"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
