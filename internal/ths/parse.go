package ths

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
)

// ParseQuote converts a raw chart response into a valuation quote.
//
// The response looks like
//
//	vm_fd_163406='...|2026-01-30~2.2511~0930,0931,2.2528,2.2511,0.000;1500,2.28318,2.2511,0.000'
//
// Segment 1 of the '|' split starts with a '~' separated header
// (date~prevNetValue~startTime), followed after the first ',' by intraday
// ticks separated by ';'. Each tick is "time,valuation,prevNetValue,...".
// The latest tick provides the current valuation. Outside trading hours the
// tick list may be empty, in which case the quote falls back to the previous
// net value with no change.
//
// Returns:
//   - ErrMalformedResponse: missing segments, missing header fields, or a net value that is unparsable or not finite
//   - ErrDivisionGuard: a previous net value of zero
func ParseQuote(raw string) (model.ValuationQuote, error) {
	content := strings.TrimSpace(raw)

	segments := strings.Split(content, "|")
	if len(segments) < 2 {
		return model.ValuationQuote{}, fmt.Errorf("%w: expected '|' separated segments", apperrors.ErrMalformedResponse)
	}

	body := strings.TrimSpace(strings.Trim(strings.TrimSpace(segments[1]), "'\";"))
	header, ticks, _ := strings.Cut(body, ",")

	headerParts := strings.Split(header, "~")
	if len(headerParts) < 2 {
		return model.ValuationQuote{}, fmt.Errorf("%w: header %q has no net value", apperrors.ErrMalformedResponse, header)
	}

	prev, err := strconv.ParseFloat(strings.TrimSpace(headerParts[1]), 64)
	if err != nil {
		return model.ValuationQuote{}, fmt.Errorf("%w: net value %q: %w", apperrors.ErrMalformedResponse, headerParts[1], err)
	}
	if !isFinite(prev) {
		return model.ValuationQuote{}, fmt.Errorf("%w: net value %q is not finite", apperrors.ErrMalformedResponse, headerParts[1])
	}
	if prev == 0 {
		return model.ValuationQuote{}, apperrors.ErrDivisionGuard
	}

	quote := model.ValuationQuote{
		PrevNetValue:     prev,
		CurrentValuation: prev,
		ChangePct:        0,
		Date:             strings.TrimSpace(headerParts[0]),
	}

	tickTime, current, ok := lastTick(ticks)
	if !ok {
		return quote, nil
	}

	quote.CurrentValuation = current
	quote.ChangePct = (current - prev) / prev * 100
	quote.Time = tickTime
	return quote, nil
}

// lastTick returns the time and valuation of the most recent tick in ticks.
// A tick with an unparsable or non-finite valuation is treated as missing.
func lastTick(ticks string) (string, float64, bool) {
	ticks = strings.TrimSpace(ticks)
	if ticks == "" {
		return "", 0, false
	}

	points := strings.Split(ticks, ";")
	last := strings.TrimSpace(points[len(points)-1])

	fields := strings.Split(last, ",")
	if len(fields) < 2 {
		return "", 0, false
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil || !isFinite(v) {
		return "", 0, false
	}
	return strings.TrimSpace(fields[0]), v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
