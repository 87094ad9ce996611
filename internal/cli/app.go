package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hightemp/intltel/internal/config"
	"github.com/hightemp/intltel/internal/countries"
	"github.com/hightemp/intltel/internal/logger"
	"github.com/hightemp/intltel/internal/numplan"
	"github.com/hightemp/intltel/internal/output"
	"github.com/hightemp/intltel/internal/resolver"
	"github.com/hightemp/intltel/internal/telinput"
)

// app is what every command runs against once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	catalog []countries.Country
	engine  *resolver.Engine
	format  output.Format
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(cmd *cobra.Command) *app {
	a, _ := cmd.Context().Value(appKey{}).(*app)
	return a
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"log_level":                    "log-level",
	"log_format":                   "log-format",
	"catalog_file":                 "catalog",
	"options.only_countries":       "only",
	"options.preferred_countries":  "preferred",
	"options.selected_country_iso": "country",
	"concurrency":                  "concurrency",
	"http_addr":                    "addr",
}

func setup(cmd *cobra.Command, gf *globalFlags) (*app, error) {
	format, err := output.ParseFormat(gf.format)
	if err != nil {
		return nil, &ExitError{Code: ExitInvalidInput, Err: err}
	}

	flags := make(map[string]*pflag.Flag, len(flagKeys))
	for key, name := range flagKeys {
		flags[key] = cmd.Flags().Lookup(name)
	}
	cfg, err := config.Load(config.LoadOptions{ConfigFile: gf.configFile, Flags: flags})
	if err != nil {
		return nil, err
	}
	if gf.noAuto {
		cfg.Options.EnableAutoCountrySelect = false
	}

	l := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})

	catalog := countries.Load()
	if cfg.CatalogFile != "" {
		catalog, err = countries.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		l.Debug("catalog loaded", "path", cfg.CatalogFile, "countries", len(catalog))
	}

	return &app{
		cfg:     cfg,
		logger:  l,
		catalog: catalog,
		engine:  resolver.NewEngine(numplan.Default(), l),
		format:  format,
	}, nil
}

// options returns the input options with placeholders turned off unless a
// listing needs them.
func (a *app) options(placeholders bool) config.Options {
	opts := a.cfg.Options
	opts.PreferredCountries = slices.Clone(opts.PreferredCountries)
	opts.OnlyCountries = slices.Clone(opts.OnlyCountries)
	opts.SearchCountryField = slices.Clone(opts.SearchCountryField)
	opts.EnablePlaceholder = placeholders && opts.EnablePlaceholder
	return opts
}

// newInput returns an active input. An explicitly requested country that is
// missing from the working catalog is an error here, unlike in the input
// itself where it is ignored.
func (a *app) newInput(opts config.Options) (*telinput.Input, error) {
	in, err := telinput.New(a.catalog, opts, a.engine, a.logger)
	if err != nil {
		return nil, err
	}
	if iso := opts.SelectedCountryISO; iso != "" {
		if _, err := countries.Lookup(in.Countries(), iso); err != nil {
			return nil, err
		}
	}
	in.Activate()
	return in, nil
}

func (a *app) print(cmd *cobra.Command, r interface {
	Render(output.Format) (string, error)
}) error {
	text, err := r.Render(a.format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
