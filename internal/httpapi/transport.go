package httpapi

import (
	"github.com/hightemp/intltel/internal/countries"
	"github.com/hightemp/intltel/internal/resolver"
)

// ResolveRequest asks for the resolution of a typed number.
type ResolveRequest struct {
	Number string `json:"number" validate:"max=64"`
	// Country is the selection the number is typed against; empty keeps the
	// configured default.
	Country string `json:"country" validate:"omitempty,len=2,alpha"`
	// AutoDetect overrides the configured auto country selection.
	AutoDetect *bool `json:"autoDetect"`
}

// ResolveResponse carries the country after resolution. Payload is null for
// an empty number.
type ResolveResponse struct {
	Country countries.Country `json:"country"`
	Payload *resolver.Payload `json:"payload"`
	Valid   bool              `json:"valid"`
	Change  string            `json:"change"`
}

// SelectRequest is an explicit country pick for a typed number.
type SelectRequest struct {
	Number  string `json:"number" validate:"max=64"`
	Country string `json:"country" validate:"required,len=2,alpha"`
}

// SelectResponse carries the picked country and, when a number was typed,
// its payload.
type SelectResponse struct {
	Country countries.Country `json:"country"`
	Payload *resolver.Payload `json:"payload,omitempty"`
	Valid   bool              `json:"valid"`
}

// SearchRequest is the query of a country search.
type SearchRequest struct {
	Q     string `form:"q" validate:"max=64"`
	Field string `form:"field"`
}

// SearchResponse lists matches in catalog order. Target is the country to
// scroll to.
type SearchResponse struct {
	Matches []countries.Country `json:"matches"`
	Target  *countries.Country  `json:"target"`
}

// CountriesResponse is the working catalog and the preferred projection.
type CountriesResponse struct {
	Preferred []countries.Country `json:"preferred"`
	Countries []countries.Country `json:"countries"`
	Selected  countries.Country   `json:"selected"`
}
