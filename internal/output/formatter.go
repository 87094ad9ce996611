// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hightemp/intltel/internal/resolver"
)

// Format is an output format.
type Format string

const (
	// FormatText is tab-separated text.
	FormatText Format = "text"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (use text, json or yaml)", s)
	}
}

// ResolveResult contains the result of resolving one input.
type ResolveResult struct {
	Input       string            `json:"input" yaml:"input"`
	CountryCode string            `json:"country_code" yaml:"country_code"`
	CountryName string            `json:"country_name" yaml:"country_name"`
	Valid       bool              `json:"valid" yaml:"valid"`
	Payload     *resolver.Payload `json:"payload" yaml:"payload"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// FormatText formats result as tab-separated text:
// input, country, dial code, international, national, validity.
func (r *ResolveResult) FormatText() string {
	if r.Error != "" {
		return FormatError(r.Input, fmt.Errorf("%s", r.Error))
	}

	if r.Payload == nil {
		return fmt.Sprintf("%s\t%s\t-\t-\t-\t-", r.Input, r.CountryCode)
	}

	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s",
		r.Input,
		r.CountryCode,
		r.Payload.DialCode,
		orDash(r.Payload.InternationalNumber),
		orDash(r.Payload.NationalNumber),
		validity(r.Valid),
	)
}

// FormatJSON formats result as JSON.
func (r *ResolveResult) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatYAML formats result as YAML.
func (r *ResolveResult) FormatYAML() (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Render formats result in f.
func (r *ResolveResult) Render(f Format) (string, error) {
	switch f {
	case FormatJSON:
		return r.FormatJSON()
	case FormatYAML:
		return r.FormatYAML()
	default:
		return r.FormatText(), nil
	}
}

// BatchResult contains results for batch processing.
type BatchResult struct {
	Results []*ResolveResult
}

// FormatText formats batch results as text (one line per result).
func (b *BatchResult) FormatText() string {
	var lines []string
	for _, r := range b.Results {
		lines = append(lines, r.FormatText())
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats batch results as JSON array.
func (b *BatchResult) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(b.Results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatYAML formats batch results as a YAML sequence.
func (b *BatchResult) FormatYAML() (string, error) {
	data, err := yaml.Marshal(b.Results)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Render formats batch results in f.
func (b *BatchResult) Render(f Format) (string, error) {
	switch f {
	case FormatJSON:
		return b.FormatJSON()
	case FormatYAML:
		return b.FormatYAML()
	default:
		return b.FormatText(), nil
	}
}

// FormatError formats an error line for batch output.
func FormatError(input string, err error) string {
	return fmt.Sprintf("%s\t-\t-\t-\t-\tERROR: %s", input, err.Error())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func validity(ok bool) string {
	if ok {
		return "valid"
	}
	return "invalid"
}
