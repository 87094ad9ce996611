// Package search matches free-text country lookups against the catalog.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hightemp/intltel/internal/countries"
)

// ErrInvalidField is returned for an unknown search field name.
var ErrInvalidField = errors.New("invalid search field")

// Field selects which country attribute a search looks at.
type Field string

const (
	// FieldAll tests name, ISO2 and dial code.
	FieldAll Field = "all"
	// FieldName tests the country name.
	FieldName Field = "name"
	// FieldISO2 tests the two-letter code.
	FieldISO2 Field = "iso2"
	// FieldDialCode tests the dial code.
	FieldDialCode Field = "dialCode"
)

// ParseField parses a field name.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(s) {
	case "all", "":
		return FieldAll, nil
	case "name":
		return FieldName, nil
	case "iso2":
		return FieldISO2, nil
	case "dialcode", "dial_code", "dial-code":
		return FieldDialCode, nil
	default:
		return "", fmt.Errorf("%w: %s (use all, name, iso2 or dialCode)", ErrInvalidField, s)
	}
}

// ParseFields parses a list of field names.
func ParseFields(names []string) ([]Field, error) {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		f, err := ParseField(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Match returns the countries matching text in catalog order. Name and ISO2
// are case-insensitive prefix tests; the dial code is compared against text
// as typed. Empty text matches nothing.
func Match(catalog []countries.Country, fields []Field, text string) []countries.Country {
	if text == "" {
		return nil
	}

	var name, iso2, dial bool
	for _, f := range fields {
		switch f {
		case FieldAll:
			name, iso2, dial = true, true, true
		case FieldName:
			name = true
		case FieldISO2:
			iso2 = true
		case FieldDialCode:
			dial = true
		}
	}

	lower := strings.ToLower(text)
	var result []countries.Country
	for _, c := range catalog {
		switch {
		case iso2 && strings.HasPrefix(strings.ToLower(c.ISO2), lower),
			name && strings.HasPrefix(strings.ToLower(c.Name), lower),
			dial && strings.HasPrefix(c.DialCode, text):
			result = append(result, c)
		}
	}
	return result
}

// ScrollTarget returns the country a list should bring into view: the first
// match, or the first catalog entry when text is empty.
func ScrollTarget(catalog []countries.Country, fields []Field, text string) (countries.Country, bool) {
	if text == "" {
		if len(catalog) == 0 {
			return countries.Country{}, false
		}
		return catalog[0], true
	}
	matches := Match(catalog, fields, text)
	if len(matches) == 0 {
		return countries.Country{}, false
	}
	return matches[0], true
}
