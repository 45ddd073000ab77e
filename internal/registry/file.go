package registry

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
)

var fundCodePattern = regexp.MustCompile(`^\d{6}$`)

// File is the on-disk layout of an extra registry file:
//
//	funds:
//	  - name: 兴全合润混合A
//	    code: "163406"
type File struct {
	Funds []Entry `yaml:"funds"`
}

// LoadFile reads additional entries from a YAML file. Every code must be six digits.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoadRegistry, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrFailedToLoadRegistry, path, err)
	}

	for i, e := range f.Funds {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", apperrors.ErrFailedToLoadRegistry, i)
		}
		if !fundCodePattern.MatchString(e.Code) {
			return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrFailedToLoadRegistry, e.Name, apperrors.ErrInvalidFundCode)
		}
	}

	return f.Funds, nil
}
