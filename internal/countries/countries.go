// Package countries provides the country catalog used for dial-code lookup.
package countries

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

//go:embed catalog.txt
var catalogData string

var (
	builtin []Country
	once    sync.Once
)

var (
	// ErrUnknownCountry is returned when an ISO2 code is not in a catalog.
	ErrUnknownCountry = errors.New("unknown country")
	// ErrInvalidCatalog is returned when a catalog breaks an integrity rule.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Country is one catalog record.
type Country struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	ISO2     string `json:"iso2" yaml:"iso2" toml:"iso2"`
	DialCode string `json:"dialCode" yaml:"dialCode" toml:"dial_code"`
	Priority int    `json:"priority" yaml:"priority" toml:"priority"`
	// AreaCodes is nil for the main country of a dial code.
	AreaCodes   []string `json:"areaCodes,omitempty" yaml:"areaCodes,omitempty" toml:"area_codes"`
	Placeholder string   `json:"placeholder" yaml:"placeholder" toml:"-"`
	FlagKey     string   `json:"flagKey" yaml:"flagKey" toml:"-"`
}

// IsMain reports whether c is the default country for its dial code.
func (c Country) IsMain() bool {
	return c.AreaCodes == nil
}

// IsZero reports whether c is the zero record.
func (c Country) IsZero() bool {
	return c.ISO2 == ""
}

func loadData() {
	once.Do(func() {
		builtin = make([]Country, 0, 256)

		scanner := bufio.NewScanner(strings.NewReader(catalogData))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			c, ok := parseLine(line)
			if !ok {
				continue
			}
			builtin = append(builtin, c)
		}
	})
}

func parseLine(line string) (Country, bool) {
	parts := strings.Split(line, ";")
	if len(parts) != 5 {
		return Country{}, false
	}
	priority := 0
	if p := strings.TrimSpace(parts[3]); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Country{}, false
		}
		priority = n
	}
	var areaCodes []string
	if a := strings.TrimSpace(parts[4]); a != "" {
		areaCodes = strings.Fields(a)
	}
	return normalize(Country{
		Name:      strings.TrimSpace(parts[0]),
		ISO2:      strings.TrimSpace(parts[1]),
		DialCode:  strings.TrimSpace(parts[2]),
		Priority:  priority,
		AreaCodes: areaCodes,
	}), true
}

// normalize lower-cases the identity key and derives the flag key.
func normalize(c Country) Country {
	c.ISO2 = strings.ToLower(c.ISO2)
	c.FlagKey = c.ISO2
	return c
}

// Load returns a fresh copy of the built-in catalog in its canonical order.
func Load() []Country {
	loadData()
	result := make([]Country, len(builtin))
	for i, c := range builtin {
		if c.AreaCodes != nil {
			c.AreaCodes = append([]string(nil), c.AreaCodes...)
		}
		result[i] = c
	}
	return result
}

// Count returns the number of built-in countries.
func Count() int {
	loadData()
	return len(builtin)
}

// Find returns the country with the given ISO2 code (case-insensitive).
func Find(list []Country, iso2 string) (Country, bool) {
	for _, c := range list {
		if strings.EqualFold(c.ISO2, iso2) {
			return c, true
		}
	}
	return Country{}, false
}

// Lookup is Find returning ErrUnknownCountry when the code is missing.
func Lookup(list []Country, iso2 string) (Country, error) {
	c, ok := Find(list, iso2)
	if !ok {
		return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountry, iso2)
	}
	return c, nil
}

// ByDialCode returns the countries sharing dialCode, in catalog order.
func ByDialCode(list []Country, dialCode string) []Country {
	var result []Country
	for _, c := range list {
		if c.DialCode == dialCode {
			result = append(result, c)
		}
	}
	return result
}

// Validate checks the catalog integrity rules: non-empty numeric dial codes,
// unique ISO2 codes and at most one main country per dial code.
func Validate(list []Country) error {
	if len(list) == 0 {
		return fmt.Errorf("%w: empty catalog", ErrInvalidCatalog)
	}

	var errs []error
	seen := make(map[string]bool, len(list))
	mains := make(map[string]string)

	for _, c := range list {
		iso := strings.ToLower(c.ISO2)
		if len(iso) != 2 {
			errs = append(errs, fmt.Errorf("%w: bad iso2 %q for %q", ErrInvalidCatalog, c.ISO2, c.Name))
			continue
		}
		if seen[iso] {
			errs = append(errs, fmt.Errorf("%w: duplicate iso2 %q", ErrInvalidCatalog, iso))
		}
		seen[iso] = true

		if !isDigits(c.DialCode) {
			errs = append(errs, fmt.Errorf("%w: bad dial code %q for %q", ErrInvalidCatalog, c.DialCode, iso))
			continue
		}
		if c.IsMain() {
			if other, ok := mains[c.DialCode]; ok {
				errs = append(errs, fmt.Errorf("%w: %q and %q are both main for +%s", ErrInvalidCatalog, other, iso, c.DialCode))
				continue
			}
			mains[c.DialCode] = iso
		}
	}

	return errors.Join(errs...)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
