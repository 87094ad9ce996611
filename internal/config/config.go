// Package config provides configuration loading and path management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hightemp/intltel/internal/search"
)

const (
	// AppName is the application name.
	AppName = "intltel"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// EnvPrefix prefixes environment overrides, e.g. INTLTEL_OPTIONS_ONLY_COUNTRIES.
	EnvPrefix = "INTLTEL"

	// DotEnvFileName is the optional dotenv file read from the working directory.
	DotEnvFileName = ".env"

	// DefaultHTTPAddr is the default listen address of the HTTP API.
	DefaultHTTPAddr = ":8080"

	// DefaultConcurrency is the default batch resolution concurrency.
	DefaultConcurrency = 4

	// MaxConcurrency caps batch resolution concurrency.
	MaxConcurrency = 32
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Options are the input behaviour options.
type Options struct {
	PreferredCountries      []string `mapstructure:"preferred_countries" json:"preferredCountries" validate:"dive,len=2,alpha"`
	OnlyCountries           []string `mapstructure:"only_countries" json:"onlyCountries" validate:"dive,len=2,alpha"`
	EnableAutoCountrySelect bool     `mapstructure:"enable_auto_country_select" json:"enableAutoCountrySelect"`
	SelectFirstCountry      bool     `mapstructure:"select_first_country" json:"selectFirstCountry"`
	SelectedCountryISO      string   `mapstructure:"selected_country_iso" json:"selectedCountryISO" validate:"omitempty,len=2,alpha"`
	SearchCountryField      []string `mapstructure:"search_country_field" json:"searchCountryField" validate:"dive,searchfield"`
	EnablePlaceholder       bool     `mapstructure:"enable_placeholder" json:"enablePlaceholder"`
	PhoneValidation         bool     `mapstructure:"phone_validation" json:"phoneValidation"`
}

// Config holds runtime configuration.
type Config struct {
	Options     Options `mapstructure:"options"`
	CatalogFile string  `mapstructure:"catalog_file"`
	LogLevel    string  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string  `mapstructure:"log_format" validate:"oneof=text json logfmt"`
	HTTPAddr    string  `mapstructure:"http_addr" validate:"required"`
	Concurrency int     `mapstructure:"concurrency" validate:"min=1"`
}

// DefaultOptions returns the default input options.
func DefaultOptions() Options {
	return Options{
		EnableAutoCountrySelect: true,
		SelectFirstCountry:      true,
		SearchCountryField:      []string{"all"},
		EnablePlaceholder:       true,
		PhoneValidation:         true,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Options:     DefaultOptions(),
		LogLevel:    "info",
		LogFormat:   "text",
		HTTPAddr:    DefaultHTTPAddr,
		Concurrency: DefaultConcurrency,
	}
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist when set.
	ConfigFile string
	// ConfigDir overrides DefaultConfigDir when searching for config.{toml,yaml,json}.
	ConfigDir string
	// DotEnv is read before environment variables when it exists.
	DotEnv string
	// Flags maps config keys to command-line flags. Only flags the user
	// changed override lower layers.
	Flags map[string]*pflag.Flag
}

// Load reads configuration from defaults, config file, dotenv, environment
// and flags, in increasing precedence, and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = DotEnvFileName
	}
	if fileExists(dotenv) {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, fmt.Errorf("config file not found: %s", opts.ConfigFile)
		}
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		dir := opts.ConfigDir
		if dir == "" {
			dir = DefaultConfigDir()
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	for key, flag := range opts.Flags {
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("options.preferred_countries", orEmpty(d.Options.PreferredCountries))
	v.SetDefault("options.only_countries", orEmpty(d.Options.OnlyCountries))
	v.SetDefault("options.enable_auto_country_select", d.Options.EnableAutoCountrySelect)
	v.SetDefault("options.select_first_country", d.Options.SelectFirstCountry)
	v.SetDefault("options.selected_country_iso", d.Options.SelectedCountryISO)
	v.SetDefault("options.search_country_field", d.Options.SearchCountryField)
	v.SetDefault("options.enable_placeholder", d.Options.EnablePlaceholder)
	v.SetDefault("options.phone_validation", d.Options.PhoneValidation)
	v.SetDefault("catalog_file", d.CatalogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("http_addr", d.HTTPAddr)
	v.SetDefault("concurrency", d.Concurrency)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var validate = newValidator()

// newValidator registers searchfield, which accepts what search.ParseField
// accepts.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("searchfield", func(fl validator.FieldLevel) bool {
		_, err := search.ParseField(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks cfg against its field rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ValidateOptions checks input options on their own.
func ValidateOptions(opts Options) error {
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ClampConcurrency keeps n within [1, MaxConcurrency].
func ClampConcurrency(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxConcurrency {
		return MaxConcurrency
	}
	return n
}

// DefaultConfigDir returns the default configuration directory path.
func DefaultConfigDir() string {
	if runtime.GOOS != "windows" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName)
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory
		return filepath.Join(".", "."+AppName)
	}
	return filepath.Join(dir, AppName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
