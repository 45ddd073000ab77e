// Package ocr turns positioned text fragments from a recognition engine into
// reading-order lines.
package ocr

import (
	"context"
	"math"
	"sort"
	"strings"
)

// RowThreshold is the maximum vertical distance, as a fraction of image height,
// between consecutive fragments of one row.
const RowThreshold = 0.02

// TextFragment is a single recognized phrase and its normalized bounding box.
// Coordinates are in [0,1] with the origin at the bottom-left of the image.
type TextFragment struct {
	Text string  `json:"text"`
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MidY float64 `json:"midY"`
}

// Recognizer is the text recognition collaborator. Implementations block until
// recognition completes and return every fragment found in the image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]TextFragment, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, image []byte) ([]TextFragment, error)

// Recognize calls f(ctx, image).
func (f RecognizerFunc) Recognize(ctx context.Context, image []byte) ([]TextFragment, error) {
	return f(ctx, image)
}

// Rows groups fragments into visual rows, top of the image first.
//
// Fragments are swept in descending MidY order and a fragment joins the current
// row when it lies within RowThreshold of the fragment consumed just before it,
// so a row may drift slightly across its width. Each returned row is ordered
// left to right. The input slice is not modified.
func Rows(fragments []TextFragment) [][]TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.MidY != b.MidY {
			return a.MidY > b.MidY
		}
		return leftOf(a, b)
	})

	var rows [][]TextFragment
	current := []TextFragment{sorted[0]}
	lastMidY := sorted[0].MidY

	for _, f := range sorted[1:] {
		if math.Abs(f.MidY-lastMidY) < RowThreshold {
			current = append(current, f)
		} else {
			rows = append(rows, current)
			current = []TextFragment{f}
		}
		lastMidY = f.MidY
	}
	rows = append(rows, current)

	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool {
			return leftOf(row[i], row[j])
		})
	}

	return rows
}

// Lines returns the text of each row, fragments joined by a single space.
func Lines(fragments []TextFragment) []string {
	rows := Rows(fragments)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(row))
		for _, f := range row {
			if t := strings.TrimSpace(f.Text); t != "" {
				parts = append(parts, t)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

// leftOf is a total order on fragments: MinX first, then text and right edge
// so that equal positions still sort the same way for any input permutation.
func leftOf(a, b TextFragment) bool {
	if a.MinX != b.MinX {
		return a.MinX < b.MinX
	}
	if a.Text != b.Text {
		return a.Text < b.Text
	}
	if a.MaxX != b.MaxX {
		return a.MaxX < b.MaxX
	}
	return a.MidY > b.MidY
}
