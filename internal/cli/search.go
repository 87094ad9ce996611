package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hightemp/intltel/internal/output"
	"github.com/hightemp/intltel/internal/search"
)

func newSearchCmd() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search the country catalog",
		Long: `Matches text as a prefix of the country name, ISO2 code or dial code.
Results keep catalog order; the first one is highlighted.

Examples:
  intltel search united
  intltel search 44 --field dialCode`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], field)
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "field to match: all, name, iso2 or dialCode (default from config)")
	return cmd
}

func runSearch(cmd *cobra.Command, text, field string) error {
	a := appFrom(cmd)

	opts := a.options(false)
	if field != "" {
		f, err := search.ParseField(field)
		if err != nil {
			return err
		}
		opts.SearchCountryField = []string{string(f)}
	}

	in, err := a.newInput(opts)
	if err != nil {
		return err
	}
	res := in.Search(text)
	if len(res.Matches) == 0 {
		return &ExitError{Code: ExitNotFound, Err: fmt.Errorf("no country matches %q", text)}
	}

	return a.print(cmd, &output.CountryList{
		Countries: res.Matches,
		Target:    res.Target.ISO2,
	})
}
