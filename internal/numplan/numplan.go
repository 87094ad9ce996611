// Package numplan wraps the numbering-plan library used to parse and format
// phone numbers.
package numplan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Format selects how a parsed number is rendered.
type Format int

const (
	// National renders the number as dialled inside its country.
	National Format = iota
	// International renders the number with its +CC prefix and grouping.
	International
	// E164 renders the compact +CCNNN form.
	E164
)

// ErrNoExample is returned when the library has no example number for a region.
var ErrNoExample = errors.New("no example number")

// Number is a parsed phone number.
type Number struct {
	// CountryCode is the country calling code, e.g. 1 or 44.
	CountryCode int
	// NationalNumber is the national number field in decimal. Leading zeros
	// (Italian numbers) are not part of it.
	NationalNumber string

	pn *phonenumbers.PhoneNumber
}

// Plan is the set of numbering-plan primitives the resolver depends on.
type Plan interface {
	Parse(text, region string) (*Number, error)
	Format(n *Number, f Format) string
	ExampleNumber(region string) (*Number, error)
	IsValidForRegion(n *Number, region string) bool
}

// PhoneNumbers implements Plan on top of github.com/nyaruka/phonenumbers.
type PhoneNumbers struct{}

// Default returns the library-backed plan.
func Default() Plan {
	return PhoneNumbers{}
}

// Parse parses text using region as the default region hint.
func (PhoneNumbers) Parse(text, region string) (*Number, error) {
	pn, err := phonenumbers.Parse(text, strings.ToUpper(region))
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", text, err)
	}
	return wrap(pn), nil
}

// Format renders n. Numbers not produced by this plan format as "".
func (PhoneNumbers) Format(n *Number, f Format) string {
	if n == nil || n.pn == nil {
		return ""
	}
	switch f {
	case International:
		return phonenumbers.Format(n.pn, phonenumbers.INTERNATIONAL)
	case E164:
		return phonenumbers.Format(n.pn, phonenumbers.E164)
	default:
		return phonenumbers.Format(n.pn, phonenumbers.NATIONAL)
	}
}

// ExampleNumber returns the library's example number for region.
func (PhoneNumbers) ExampleNumber(region string) (*Number, error) {
	pn := phonenumbers.GetExampleNumber(strings.ToUpper(region))
	if pn == nil {
		return nil, fmt.Errorf("%w for region %q", ErrNoExample, region)
	}
	return wrap(pn), nil
}

// IsValidForRegion reports whether n is a valid number in region.
func (PhoneNumbers) IsValidForRegion(n *Number, region string) bool {
	if n == nil || n.pn == nil {
		return false
	}
	return phonenumbers.IsValidNumberForRegion(n.pn, strings.ToUpper(region))
}

func wrap(pn *phonenumbers.PhoneNumber) *Number {
	return &Number{
		CountryCode:    int(pn.GetCountryCode()),
		NationalNumber: strconv.FormatUint(pn.GetNationalNumber(), 10),
		pn:             pn,
	}
}
