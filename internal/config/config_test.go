package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Options.EnableAutoCountrySelect)
	assert.True(t, cfg.Options.SelectFirstCountry)
	assert.True(t, cfg.Options.EnablePlaceholder)
	assert.True(t, cfg.Options.PhoneValidation)
	assert.Equal(t, []string{"all"}, cfg.Options.SearchCountryField)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	require.NoError(t, Validate(cfg))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(LoadOptions{ConfigDir: dir, DotEnv: filepath.Join(dir, "none.env")})
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Options, normalizeEmpty(cfg.Options))
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `
log_level = "debug"
http_addr = "127.0.0.1:9000"

[options]
preferred_countries = ["us", "gb"]
only_countries = ["us", "gb", "ca"]
enable_auto_country_select = false
search_country_field = ["name", "dialCode"]
`)

	cfg, err := Load(LoadOptions{ConfigDir: dir, DotEnv: filepath.Join(dir, "none.env")})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, []string{"us", "gb"}, cfg.Options.PreferredCountries)
	assert.Equal(t, []string{"us", "gb", "ca"}, cfg.Options.OnlyCountries)
	assert.False(t, cfg.Options.EnableAutoCountrySelect)
	assert.True(t, cfg.Options.PhoneValidation)
	assert.Equal(t, []string{"name", "dialCode"}, cfg.Options.SearchCountryField)
}

func TestLoadExplicitYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "options:\n  selected_country_iso: fr\n  phone_validation: false\n")

	cfg, err := Load(LoadOptions{ConfigFile: path, DotEnv: filepath.Join(dir, "none.env")})
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Options.SelectedCountryISO)
	assert.False(t, cfg.Options.PhoneValidation)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), "log_level = \"debug\"\n")
	t.Setenv("INTLTEL_LOG_LEVEL", "warn")
	t.Setenv("INTLTEL_OPTIONS_ONLY_COUNTRIES", "de,fr")

	cfg, err := Load(LoadOptions{ConfigDir: dir, DotEnv: filepath.Join(dir, "none.env")})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"de", "fr"}, cfg.Options.OnlyCountries)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, "test.env")
	writeFile(t, dotenv, "INTLTEL_HTTP_ADDR=:7070\n")
	t.Setenv("INTLTEL_HTTP_ADDR", "")
	os.Unsetenv("INTLTEL_HTTP_ADDR")

	cfg, err := Load(LoadOptions{ConfigDir: dir, DotEnv: dotenv})
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
}

func TestLoadFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), "[options]\nonly_countries = [\"us\"]\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringSlice("only", nil, "")
	fs.String("log-level", "info", "")
	require.NoError(t, fs.Parse([]string{"--only", "gb,ie"}))

	cfg, err := Load(LoadOptions{
		ConfigDir: dir,
		DotEnv:    filepath.Join(dir, "none.env"),
		Flags: map[string]*pflag.Flag{
			"options.only_countries": fs.Lookup("only"),
			"log_level":              fs.Lookup("log-level"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"gb", "ie"}, cfg.Options.OnlyCountries)
	// Unchanged flags keep lower layers.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"long iso", "[options]\nonly_countries = [\"usa\"]\n"},
		{"numeric iso", "[options]\nselected_country_iso = \"12\"\n"},
		{"search field", "[options]\nsearch_country_field = [\"flag\"]\n"},
		{"log level", "log_level = \"loud\"\n"},
		{"concurrency", "concurrency = 0\n"},
	}

	for _, tc := range tests {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "config.toml"), tc.content)

		_, err := Load(LoadOptions{ConfigDir: dir, DotEnv: filepath.Join(dir, "none.env")})
		assert.True(t, errors.Is(err, ErrInvalid), "%s: got %v", tc.name, err)
	}
}

func TestLoadAcceptsSearchFieldSpellings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `
[options]
search_country_field = ["Name", "dial_code", "dialcode", "ISO2"]
`)

	cfg, err := Load(LoadOptions{ConfigDir: dir, DotEnv: filepath.Join(dir, "none.env")})
	require.NoError(t, err)
	assert.Len(t, cfg.Options.SearchCountryField, 4)
}

func TestValidateOptions(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, ValidateOptions(opts))

	opts.PreferredCountries = []string{"u"}
	assert.True(t, errors.Is(ValidateOptions(opts), ErrInvalid))
}

func TestClampConcurrency(t *testing.T) {
	assert.Equal(t, 1, ClampConcurrency(0))
	assert.Equal(t, 1, ClampConcurrency(-3))
	assert.Equal(t, 8, ClampConcurrency(8))
	assert.Equal(t, MaxConcurrency, ClampConcurrency(1000))
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if filepath.Separator == '/' {
		assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
	}
}

// normalizeEmpty maps empty slices decoded from defaults back to nil.
func normalizeEmpty(o Options) Options {
	if len(o.PreferredCountries) == 0 {
		o.PreferredCountries = nil
	}
	if len(o.OnlyCountries) == 0 {
		o.OnlyCountries = nil
	}
	return o
}
