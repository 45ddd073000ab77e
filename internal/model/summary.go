package model

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Summary holds the aggregates shown next to a list of holdings.
type Summary struct {
	Count                 int     `json:"count"`
	Valuated              int     `json:"valuated"`
	TotalAmount           float64 `json:"totalAmount"`
	TotalHoldProfit       float64 `json:"totalHoldProfit"`
	TotalRealtimeProfit   float64 `json:"totalRealtimeProfit"`
	TotalAmountDisplay    string  `json:"totalAmountDisplay"`
	RealtimeProfitDisplay string  `json:"realtimeProfitDisplay"`
}

// Summarize sums the monetary fields of records using decimal arithmetic.
func Summarize(records []HoldingRecord) Summary {
	amount := decimal.Zero
	holdProfit := decimal.Zero
	realtime := decimal.Zero
	valuated := 0

	for _, r := range records {
		amount = amount.Add(decimal.NewFromFloat(r.HoldingAmount))
		holdProfit = holdProfit.Add(decimal.NewFromFloat(r.HoldProfit))
		realtime = realtime.Add(decimal.NewFromFloat(r.RealtimeProfit))
		if r.Status == StatusSuccess {
			valuated++
		}
	}

	amount = amount.Round(2)
	holdProfit = holdProfit.Round(2)
	realtime = realtime.Round(2)

	return Summary{
		Count:                 len(records),
		Valuated:              valuated,
		TotalAmount:           amount.InexactFloat64(),
		TotalHoldProfit:       holdProfit.InexactFloat64(),
		TotalRealtimeProfit:   realtime.InexactFloat64(),
		TotalAmountDisplay:    displayCNY(amount),
		RealtimeProfitDisplay: displayCNY(realtime),
	}
}

// displayCNY renders a decimal amount in yuan using the currency's minor unit.
func displayCNY(amount decimal.Decimal) string {
	cur := money.GetCurrency(money.CNY)
	if cur == nil {
		return amount.StringFixed(2)
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	return money.New(amount.Mul(factor).IntPart(), money.CNY).Display()
}
