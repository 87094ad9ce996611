// Package resolver resolves typed phone numbers against the country catalog.
package resolver

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hightemp/intltel/internal/countries"
	"github.com/hightemp/intltel/internal/logger"
	"github.com/hightemp/intltel/internal/numplan"
)

// Payload is the value handed to the host form.
type Payload struct {
	Number              string `json:"number" yaml:"number"`
	InternationalNumber string `json:"internationalNumber" yaml:"internationalNumber"`
	NationalNumber      string `json:"nationalNumber" yaml:"nationalNumber"`
	CountryCode         string `json:"countryCode" yaml:"countryCode"`
	DialCode            string `json:"dialCode" yaml:"dialCode"`
}

// Resolution is the outcome of resolving one input.
type Resolution struct {
	Country countries.Country
	// Payload is nil when the input was empty.
	Payload *Payload
	// Number is nil when the input did not parse.
	Number *numplan.Number
}

// Engine runs resolutions. It holds no per-input state.
type Engine struct {
	plan   numplan.Plan
	logger *log.Logger
}

// NewEngine creates an engine backed by plan.
func NewEngine(plan numplan.Plan, l *log.Logger) *Engine {
	if plan == nil {
		plan = numplan.Default()
	}
	return &Engine{
		plan:   plan,
		logger: logger.OrDiscard(l),
	}
}

// Plan returns the numbering plan the engine parses with.
func (e *Engine) Plan() numplan.Plan {
	return e.plan
}

// Resolve parses raw with selected as the region hint and, when autoDetect is
// set, switches to the catalog country matching the parsed dial and area code.
func (e *Engine) Resolve(raw string, selected countries.Country, catalog []countries.Country, autoDetect bool) Resolution {
	number := e.parse(raw, selected)

	resolved := selected
	if autoDetect && number != nil && number.CountryCode != 0 {
		if iso, ok := Disambiguate(number.CountryCode, number.NationalNumber, catalog); ok && !strings.EqualFold(iso, selected.ISO2) {
			if c, found := countries.Find(catalog, iso); found {
				e.logger.Debug("country detected", "from", selected.ISO2, "to", c.ISO2)
				resolved = c
			}
		}
	}

	res := Resolution{Country: resolved, Number: number}
	if raw != "" {
		res.Payload = e.payload(raw, resolved, number)
	}
	return res
}

// SelectCountry builds the payload for an explicit country pick. The user's
// choice is kept as is; nil is returned when raw is empty.
func (e *Engine) SelectCountry(country countries.Country, raw string) *Payload {
	if raw == "" {
		return nil
	}
	return e.payload(raw, country, e.parse(raw, country))
}

// Valid reports whether raw parses to a valid number for country.
func (e *Engine) Valid(raw string, country countries.Country) bool {
	number := e.parse(raw, country)
	if number == nil {
		return false
	}
	return e.plan.IsValidForRegion(number, country.ISO2)
}

// parse swallows library errors: partial input is the normal case.
func (e *Engine) parse(raw string, country countries.Country) *numplan.Number {
	if raw == "" {
		return nil
	}
	number, err := e.plan.Parse(raw, strings.ToUpper(country.ISO2))
	if err != nil {
		e.logger.Debug("parse failed", "input", raw, "region", country.ISO2, "err", err)
		return nil
	}
	return number
}

func (e *Engine) payload(raw string, country countries.Country, number *numplan.Number) *Payload {
	p := &Payload{
		Number:      raw,
		CountryCode: strings.ToUpper(country.ISO2),
		DialCode:    "+" + country.DialCode,
	}
	if number != nil {
		p.InternationalNumber = e.plan.Format(number, numplan.International)
		p.NationalNumber = e.plan.Format(number, numplan.National)
	}
	return p
}

// Disambiguate picks the ISO2 code for a calling code and national number.
// The main country (no area codes) is the default. Every area code of every
// other country with the same dial code is tried in catalog order and the
// last match wins, not the longest.
func Disambiguate(callingCode int, nationalNumber string, catalog []countries.Country) (string, bool) {
	candidates := countries.ByDialCode(catalog, strconv.Itoa(callingCode))

	matched := ""
	for _, c := range candidates {
		if c.IsMain() {
			matched = c.ISO2
			break
		}
	}

	for _, c := range candidates {
		if c.IsMain() {
			continue
		}
		for _, prefix := range c.AreaCodes {
			if strings.HasPrefix(nationalNumber, prefix) {
				matched = c.ISO2
			}
		}
	}

	return matched, matched != ""
}
