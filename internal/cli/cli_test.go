package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hightemp/intltel/internal/config"
	"github.com/hightemp/intltel/internal/countries"
	"github.com/hightemp/intltel/internal/output"
	"github.com/hightemp/intltel/internal/search"
)

// run executes the command tree with an isolated config directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitFailure},
		{&ExitError{Code: ExitNotFound, Err: errors.New("none")}, ExitNotFound},
		{countries.ErrUnknownCountry, ExitNotFound},
		{config.ErrInvalid, ExitInvalidInput},
		{search.ErrInvalidField, ExitInvalidInput},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCodeFor(tt.err), "%v", tt.err)
	}
}

func TestResolveSingle(t *testing.T) {
	out, err := run(t, "", "--country", "us", "+44 20 7946 0018")
	require.NoError(t, err)

	parts := strings.Split(strings.TrimSpace(out), "\t")
	require.Len(t, parts, 6)
	assert.Equal(t, "GB", parts[1])
	assert.Equal(t, "+44", parts[2])
}

func TestResolveNoAutoDetect(t *testing.T) {
	out, err := run(t, "", "--country", "us", "--no-auto-detect", "--format", "json", "+44 20 7946 0018")
	require.NoError(t, err)

	var r output.ResolveResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "US", r.CountryCode)
	require.NotNil(t, r.Payload)
	assert.Equal(t, "+1", r.Payload.DialCode)
}

func TestResolveUnknownCountry(t *testing.T) {
	_, err := run(t, "", "--country", "zz", "123")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCodeFor(err))
}

func TestResolveInvalidFlags(t *testing.T) {
	_, err := run(t, "", "--country", "usa", "123")
	assert.Equal(t, ExitInvalidInput, ExitCodeFor(err))

	_, err = run(t, "", "--format", "xml", "123")
	assert.Equal(t, ExitInvalidInput, ExitCodeFor(err))

	_, err = run(t, "", "--only", "zz", "123")
	assert.Equal(t, ExitInvalidInput, ExitCodeFor(err))
}

func TestResolveBatch(t *testing.T) {
	out, err := run(t, "2015550123\n\n+44 20 7946 0018\n", "--country", "us", "--format", "json", "--concurrency", "2")
	require.NoError(t, err)

	var results []output.ResolveResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "US", results[0].CountryCode)
	assert.Equal(t, "GB", results[1].CountryCode)
}

func TestResolveBatchSequentialText(t *testing.T) {
	out, err := run(t, "2015550123\nabc\n", "--country", "us", "--concurrency", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "\tvalid"))
	assert.True(t, strings.HasSuffix(lines[1], "\tinvalid"))
}

func TestSelect(t *testing.T) {
	out, err := run(t, "", "select", "us", "4165551234", "--format", "json")
	require.NoError(t, err)

	var r output.ResolveResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "US", r.CountryCode)
	require.NotNil(t, r.Payload)
	assert.Equal(t, "4165551234", r.Payload.Number)
}

func TestSelectUnknownCountry(t *testing.T) {
	_, err := run(t, "", "select", "zz", "4165551234")
	assert.Equal(t, ExitNotFound, ExitCodeFor(err))
}

func TestSearch(t *testing.T) {
	out, err := run(t, "", "search", "44", "--field", "dialCode", "--format", "json")
	require.NoError(t, err)

	var list output.CountryList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list.Countries, 4)
	assert.Equal(t, list.Countries[0].ISO2, list.Target)
}

func TestSearchNoMatch(t *testing.T) {
	_, err := run(t, "", "search", "qqq")
	assert.Equal(t, ExitNotFound, ExitCodeFor(err))
}

func TestSearchBadField(t *testing.T) {
	_, err := run(t, "", "search", "a", "--field", "capital")
	assert.Equal(t, ExitInvalidInput, ExitCodeFor(err))
}

func TestCountries(t *testing.T) {
	out, err := run(t, "", "countries", "--only", "de,fr", "--preferred", "fr", "--format", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "iso2: de")
	assert.Contains(t, out, "iso2: fr")
	assert.Contains(t, out, "target: fr")
	assert.NotContains(t, out, "iso2: us")
}

func TestCountriesText(t *testing.T) {
	out, err := run(t, "", "countries", "--only", "de")
	require.NoError(t, err)
	assert.Contains(t, out, "DE\t+49\tGermany")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intltel.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[options]
selected_country_iso = "de"
enable_auto_country_select = false
`), 0644))

	out, err := run(t, "", "--config", path, "--format", "json", "+44 20 7946 0018")
	require.NoError(t, err)

	var r output.ResolveResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "DE", r.CountryCode)
}

func TestCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[country]]
name = "Germany"
iso2 = "de"
dial_code = "49"

[[country]]
name = "France"
iso2 = "fr"
dial_code = "33"
`), 0644))

	out, err := run(t, "", "countries", "--catalog", path, "--format", "json")
	require.NoError(t, err)

	var list output.CountryList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list.Countries, 2)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "intltel dev")
}
