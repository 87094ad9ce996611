package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/hightemp/intltel/internal/countries"
)

var (
	// Tabs are kept so styled lines stay column-aligned with plain ones.
	preferredStyle = lipgloss.NewStyle().Bold(true).TabWidth(lipgloss.NoTabConversion)
	targetStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).TabWidth(lipgloss.NoTabConversion)
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

// CountryList is a country listing with an optional preferred section and
// scroll target.
type CountryList struct {
	Preferred []countries.Country `json:"preferred,omitempty" yaml:"preferred,omitempty"`
	Countries []countries.Country `json:"countries" yaml:"countries"`
	Target    string              `json:"target,omitempty" yaml:"target,omitempty"`
}

// FormatText renders one country per line: iso2, dial code, name and
// placeholder. The preferred section comes first, separated by a rule.
func (l *CountryList) FormatText() string {
	var b strings.Builder
	for _, c := range l.Preferred {
		b.WriteString(preferredStyle.Render(countryLine(c)))
		b.WriteByte('\n')
	}
	if len(l.Preferred) > 0 {
		b.WriteString(dimStyle.Render(strings.Repeat("-", 24)))
		b.WriteByte('\n')
	}
	for _, c := range l.Countries {
		line := countryLine(c)
		if l.Target != "" && c.ISO2 == l.Target {
			line = targetStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// Render formats the listing in f.
func (l *CountryList) Render(f Format) (string, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(l)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return l.FormatText(), nil
	}
}

func countryLine(c countries.Country) string {
	return fmt.Sprintf("%s\t+%s\t%s\t%s", strings.ToUpper(c.ISO2), c.DialCode, c.Name, c.Placeholder)
}
