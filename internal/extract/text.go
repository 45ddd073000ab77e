package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/registry"
)

var (
	codePattern   = regexp.MustCompile(`\b\d{6}\b`)
	namedLine     = regexp.MustCompile(`^\s*(?:\d+[.、\s]+)?(.*?)\s*[:：\s]\s*(\d.*)$`)
	numberPattern = regexp.MustCompile(`[+-]?\d[\d,]*\.?\d+`)

	textNormalizer = strings.NewReplacer("：", ":", "元", "", "（", "(", "）", ")")
)

// minAmount is the smallest figure accepted as a holding amount; smaller
// numbers on a line are usually list indexes or percentages.
const minAmount = 0.1

// NameSearcher resolves a free-form fund name to its code and official name.
type NameSearcher interface {
	SearchFund(ctx context.Context, keyword string) (code, name string, err error)
}

// TextParser turns pasted "<name-or-code> <amount>" lines into draft records.
type TextParser struct {
	registry *registry.Registry
	searcher NameSearcher
}

// NewTextParser creates a TextParser. searcher may be nil, in which case names
// are only resolved through the registry.
func NewTextParser(reg *registry.Registry, searcher NameSearcher) *TextParser {
	return &TextParser{registry: reg, searcher: searcher}
}

// Parse resolves every line of text that names a fund. Lines that resolve no
// fund are skipped. It fails only when ctx is done.
func (p *TextParser) Parse(ctx context.Context, text string) ([]model.HoldingRecord, error) {
	lines := strings.Split(textNormalizer.Replace(text), "\n")
	records := make([]model.HoldingRecord, 0, len(lines))

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rec, ok := p.parseLine(ctx, line); ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

func (p *TextParser) parseLine(ctx context.Context, line string) (model.HoldingRecord, bool) {
	var code, name string
	search := line

	if loc := codePattern.FindStringIndex(line); loc != nil {
		code = line[loc[0]:loc[1]]
		if n, ok := p.registry.NameForCode(code); ok {
			name = n
		} else {
			name = fmt.Sprintf("基金(%s)", code)
		}
		search = line[loc[1]:]
	} else if m := namedLine.FindStringSubmatch(line); m != nil {
		if candidate := strings.TrimSpace(m[1]); candidate != "" {
			code, name = p.resolveName(ctx, candidate)
			search = m[2]
		}
	}

	if code == "" {
		entry, ok := p.registry.LookupCompact(line)
		if !ok {
			return model.HoldingRecord{}, false
		}
		code, name = entry.Code, entry.Name
		if idx := strings.Index(line, entry.Name); idx >= 0 {
			search = line[idx+len(entry.Name):]
		}
	}

	rec := model.NewDraft(name, code)
	rec.HoldingAmount = amountIn(search, code)
	return rec, true
}

// resolveName looks a candidate up in the registry and then through the searcher.
func (p *TextParser) resolveName(ctx context.Context, candidate string) (string, string) {
	if code, ok := p.registry.Code(candidate); ok {
		return code, candidate
	}
	if p.searcher == nil {
		return "", ""
	}

	code, name, err := p.searcher.SearchFund(ctx, candidate)
	if err != nil {
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			log.Printf("fund search %q failed: %v", candidate, err)
		}
		return "", ""
	}
	if name == "" {
		name = candidate
	}
	return code, name
}

// amountIn returns the right-most number in s that is not the fund code and
// exceeds minAmount, or 0 when there is none.
func amountIn(s, code string) float64 {
	nums := numberPattern.FindAllString(s, -1)
	for i := len(nums) - 1; i >= 0; i-- {
		raw := strings.ReplaceAll(nums[i], ",", "")
		if raw == code {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if v > minAmount {
			return v
		}
	}
	return 0
}
