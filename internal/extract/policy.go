package extract

import "fmt"

// FieldPolicy decides which of a line's monetary values is the holding amount
// and which is the hold profit. Values are given in left-to-right order.
// Assign reports false when values carry no usable amount.
type FieldPolicy interface {
	Assign(values []float64) (amount, profit float64, ok bool)
}

// MaxAmountPolicy takes the largest value as the holding amount and the first
// remaining value as the hold profit. It suits layouts where the position is
// the biggest figure on the row, and misreads rows whose profit exceeds the position.
type MaxAmountPolicy struct{}

// Assign implements FieldPolicy.
func (MaxAmountPolicy) Assign(values []float64) (float64, float64, bool) {
	if len(values) == 0 {
		return 0, 0, false
	}

	maxIdx := 0
	for i, v := range values {
		if v > values[maxIdx] {
			maxIdx = i
		}
	}

	amount := values[maxIdx]
	profit := 0.0
	for i, v := range values {
		if i != maxIdx {
			profit = v
			break
		}
	}
	return amount, profit, true
}

// PositionalPolicy takes the first value as the holding amount and the second
// as the hold profit.
type PositionalPolicy struct{}

// Assign implements FieldPolicy.
func (PositionalPolicy) Assign(values []float64) (float64, float64, bool) {
	switch len(values) {
	case 0:
		return 0, 0, false
	case 1:
		return values[0], 0, true
	default:
		return values[0], values[1], true
	}
}

// PolicyByName returns the policy registered under name ("max" or "positional").
func PolicyByName(name string) (FieldPolicy, error) {
	switch name {
	case "", "max":
		return MaxAmountPolicy{}, nil
	case "positional":
		return PositionalPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown extract policy %q", name)
	}
}
