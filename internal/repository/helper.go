package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timestampLayout is a fixed-width UTC layout, so stored timestamps sort
// lexicographically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// FormatTime renders t in the layout used by timestamp columns.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTime parses a stored timestamp. RFC3339 is accepted for rows written by hand.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(timestampLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}
	return returnTime.UTC(), nil
}
