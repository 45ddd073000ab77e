package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
)

// Snapshot history limits.
const (
	DefaultSnapshotLimit = 50
	MaxSnapshotLimit     = 500
)

var fundCodePattern = regexp.MustCompile(`^\d{6}$`)

// ValidateFundCode checks that code is exactly six digits.
func ValidateFundCode(code string) error {
	if !fundCodePattern.MatchString(code) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidFundCode, code)
	}
	return nil
}

// ParseSnapshotLimit parses the limit query parameter. An empty value selects
// DefaultSnapshotLimit.
func ParseSnapshotLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSnapshotLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &Error{Fields: map[string]string{"limit": "limit must be an integer"}}
	}
	if limit < 1 || limit > MaxSnapshotLimit {
		return 0, &Error{Fields: map[string]string{
			"limit": fmt.Sprintf("limit must be between 1 and %d", MaxSnapshotLimit),
		}}
	}
	return limit, nil
}
