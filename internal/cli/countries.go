package cli

import (
	"github.com/spf13/cobra"

	"github.com/hightemp/intltel/internal/output"
)

func newCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the working country catalog",
		Long: `Lists the catalog after --only and --preferred are applied, preferred
countries first. The initially selected country is highlighted.

Examples:
  intltel countries --preferred us,gb
  intltel countries --only de,fr,it --format yaml`,
		Args: cobra.NoArgs,
		RunE: runCountries,
	}
}

func runCountries(cmd *cobra.Command, _ []string) error {
	a := appFrom(cmd)

	in, err := a.newInput(a.options(true))
	if err != nil {
		return err
	}

	return a.print(cmd, &output.CountryList{
		Preferred: in.Preferred(),
		Countries: in.Countries(),
		Target:    in.Selected().ISO2,
	})
}
