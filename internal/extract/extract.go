// Package extract mines draft holding records out of recognized line text.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/registry"
)

// moneyPattern matches amounts with an optional sign, comma-grouped digits and
// exactly two decimals, e.g. "1,649.77", "+128.40", "-12.00".
var moneyPattern = regexp.MustCompile(`[+-]?\d{1,3}(?:,\d{3})*\.\d{2}`)

// MoneyValues returns every monetary token of line as a float, left to right.
func MoneyValues(line string) []float64 {
	matches := moneyPattern.FindAllString(line, -1)
	values := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := ParseMoney(m)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// ParseMoney parses a monetary token, ignoring thousands separators.
func ParseMoney(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// Extractor matches lines against a registry and assigns monetary fields with a policy.
type Extractor struct {
	registry *registry.Registry
	policy   FieldPolicy
}

// NewExtractor creates an Extractor. A nil policy selects MaxAmountPolicy.
func NewExtractor(reg *registry.Registry, policy FieldPolicy) *Extractor {
	if policy == nil {
		policy = MaxAmountPolicy{}
	}
	return &Extractor{registry: reg, policy: policy}
}

// Record extracts a draft record from one line. It reports false when the line
// names no registered fund.
func (e *Extractor) Record(line string) (model.HoldingRecord, bool) {
	entry, ok := e.registry.Lookup(line)
	if !ok {
		return model.HoldingRecord{}, false
	}

	rec := model.NewDraft(entry.Name, entry.Code)
	if amount, profit, ok := e.policy.Assign(MoneyValues(line)); ok {
		rec.HoldingAmount = amount
		rec.HoldProfit = profit
	}
	return rec, true
}

// Records extracts at most one draft record per line, in line order.
func (e *Extractor) Records(lines []string) []model.HoldingRecord {
	records := make([]model.HoldingRecord, 0, len(lines))
	for _, line := range lines {
		if rec, ok := e.Record(line); ok {
			records = append(records, rec)
		}
	}
	return records
}
