package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/hightemp/intltel/internal/output"
)

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <iso2> <number>",
		Short: "Apply an explicit country pick to a number",
		Long: `Types the number, then picks the given country by hand. The pick is
kept even when the number's dial or area code belongs to another country.

Examples:
  intltel select us 4165551234
  intltel select gb "07400 123456" --format json`,
		Args: cobra.ExactArgs(2),
		RunE: runSelect,
	}
}

func runSelect(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	iso2, number := args[0], args[1]

	in, err := a.newInput(a.options(false))
	if err != nil {
		return err
	}
	in.ChangeNumber(number)
	payload, err := in.SelectCountry(iso2)
	if err != nil {
		return err
	}

	selected := in.Selected()
	return a.print(cmd, &output.ResolveResult{
		Input:       number,
		CountryCode: strings.ToUpper(selected.ISO2),
		CountryName: selected.Name,
		Valid:       in.IsValid(),
		Payload:     payload,
	})
}
