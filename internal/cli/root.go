// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/hightemp/intltel/internal/config"
	"github.com/hightemp/intltel/internal/countries"
	"github.com/hightemp/intltel/internal/search"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// ExitCode constants
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitNotFound     = 4
)

// ExitError carries a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps a command error to a process exit code.
func ExitCodeFor(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, countries.ErrUnknownCountry):
		return ExitNotFound
	case errors.Is(err, config.ErrInvalid),
		errors.Is(err, countries.ErrInvalidCatalog),
		errors.Is(err, search.ErrInvalidField):
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	configFile  string
	logLevel    string
	logFormat   string
	catalogFile string
	only        []string
	preferred   []string
	country     string
	noAuto      bool
	format      string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	gf := &globalFlags{}
	var concurrency int

	rootCmd := &cobra.Command{
		Use:   "intltel [number]",
		Short: "International telephone input - resolve numbers to countries",
		Long: `intltel resolves telephone numbers the way an international phone
input does: it parses the number against the selected country, switches
country when the dial and area code point elsewhere, and formats the result.

For a single number:
  intltel "+44 20 7946 0018"
  intltel --country de "030 123456"

For batch processing (read from stdin):
  cat numbers.txt | intltel --format json

Countries sharing a dial code (the +1 plan, +7, +44 and others) are told
apart by area code.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, gf)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), a))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&gf.configFile, "config", "", "config file (default is "+config.DefaultConfigDir()+"/config.toml)")
	pf.StringVar(&gf.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&gf.logFormat, "log-format", "text", "log format: text, json or logfmt")
	pf.StringVar(&gf.catalogFile, "catalog", "", "TOML country catalog replacing the built-in one")
	pf.StringSliceVar(&gf.only, "only", nil, "restrict the catalog to these ISO2 codes")
	pf.StringSliceVar(&gf.preferred, "preferred", nil, "preferred ISO2 codes, in order")
	pf.StringVarP(&gf.country, "country", "c", "", "initially selected country (ISO2)")
	pf.BoolVar(&gf.noAuto, "no-auto-detect", false, "keep the selected country whatever the number")
	pf.StringVarP(&gf.format, "format", "f", "text", "output format: text, json or yaml")

	rootCmd.Flags().IntVar(&concurrency, "concurrency", config.DefaultConcurrency, fmt.Sprintf("batch resolution concurrency (max %d)", config.MaxConcurrency))

	rootCmd.AddCommand(newSelectCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newCountriesCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits with the mapped exit code.
func Execute() {
	err := fang.Execute(
		context.Background(),
		NewRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(ExitCodeFor(err))
	}
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
