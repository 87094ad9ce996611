package countries

import (
	"github.com/charmbracelet/log"

	"github.com/hightemp/intltel/internal/logger"
	"github.com/hightemp/intltel/internal/numplan"
)

// WithPlaceholders fills Placeholder with the plan's example number for each
// country, formatted internationally. Countries without an example keep an
// empty placeholder; the failure is logged and does not stop the load.
func WithPlaceholders(list []Country, plan numplan.Plan, l *log.Logger) []Country {
	l = logger.OrDiscard(l)

	result := make([]Country, len(list))
	failed := 0
	for i, c := range list {
		n, err := plan.ExampleNumber(c.ISO2)
		if err != nil {
			l.Debug("no placeholder", "iso2", c.ISO2, "err", err)
			failed++
			result[i] = c
			continue
		}
		c.Placeholder = plan.Format(n, numplan.International)
		result[i] = c
	}

	if failed > 0 {
		l.Warn("placeholder derivation failed", "countries", failed, "total", len(list))
	}
	return result
}
