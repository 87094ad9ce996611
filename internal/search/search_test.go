package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hightemp/intltel/internal/countries"
)

func isoCodes(list []countries.Country) []string {
	codes := make([]string, 0, len(list))
	for _, c := range list {
		codes = append(codes, c.ISO2)
	}
	return codes
}

func TestParseField(t *testing.T) {
	tests := []struct {
		input    string
		expected Field
		hasError bool
	}{
		{"all", FieldAll, false},
		{"", FieldAll, false},
		{"name", FieldName, false},
		{"ISO2", FieldISO2, false},
		{"dialCode", FieldDialCode, false},
		{"dial_code", FieldDialCode, false},
		{"flag", "", true},
	}

	for _, tc := range tests {
		f, err := ParseField(tc.input)
		if tc.hasError {
			assert.Error(t, err, "ParseField(%q)", tc.input)
			continue
		}
		require.NoError(t, err, "ParseField(%q)", tc.input)
		assert.Equal(t, tc.expected, f)
	}

	_, err := ParseFields([]string{"name", "bogus"})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestMatchDialCode(t *testing.T) {
	catalog := countries.Load()

	got := Match(catalog, []Field{FieldDialCode}, "1")
	require.NotEmpty(t, got)

	// Every match starts with "1" and the catalog order is kept.
	var expected []string
	for _, c := range catalog {
		if strings.HasPrefix(c.DialCode, "1") {
			expected = append(expected, c.ISO2)
		}
	}
	assert.Equal(t, expected, isoCodes(got))
	assert.Contains(t, isoCodes(got), "us")
	assert.Contains(t, isoCodes(got), "ca")
}

func TestMatchDialCodeIsCaseSensitive(t *testing.T) {
	catalog := []countries.Country{
		{Name: "Alpha", ISO2: "aa", DialCode: "1"},
	}
	// Dial codes are compared as typed, never lower-cased.
	assert.Empty(t, Match(catalog, []Field{FieldDialCode}, "A"))
	assert.Len(t, Match(catalog, []Field{FieldName}, "A"), 1)
}

func TestMatchNameAndISO2(t *testing.T) {
	catalog := countries.Load()

	assert.Equal(t, []string{"de"}, isoCodes(Match(catalog, []Field{FieldName}, "germ")))
	assert.Equal(t, []string{"gb"}, isoCodes(Match(catalog, []Field{FieldISO2}, "GB")))
	assert.Empty(t, Match(catalog, []Field{FieldName}, "gb"))
	assert.Empty(t, Match(catalog, []Field{FieldISO2}, "united"))
}

func TestMatchAllOverridesOtherFields(t *testing.T) {
	catalog := countries.Load()

	withAll := Match(catalog, []Field{FieldName, FieldAll}, "44")
	assert.Equal(t, isoCodes(Match(catalog, []Field{FieldDialCode}, "44")), isoCodes(withAll))

	both := Match(catalog, []Field{FieldAll}, "ca")
	// "ca" is Canada's ISO2 and the start of Cambodia, Cameroon, Canada...
	assert.Contains(t, isoCodes(both), "ca")
	assert.Contains(t, isoCodes(both), "kh")
}

func TestMatchCombinedFields(t *testing.T) {
	catalog := countries.Load()

	got := Match(catalog, []Field{FieldISO2, FieldDialCode}, "3")
	for _, c := range got {
		assert.True(t, strings.HasPrefix(c.DialCode, "3"), "%s", c.ISO2)
	}
	assert.Empty(t, Match(catalog, nil, "united"))
}

func TestMatchEmptyText(t *testing.T) {
	assert.Nil(t, Match(countries.Load(), []Field{FieldAll}, ""))
}

func TestScrollTarget(t *testing.T) {
	catalog := countries.Load()

	target, ok := ScrollTarget(catalog, []Field{FieldAll}, "")
	require.True(t, ok)
	assert.Equal(t, catalog[0], target)

	target, ok = ScrollTarget(catalog, []Field{FieldName}, "united")
	require.True(t, ok)
	assert.Equal(t, "ae", target.ISO2)

	_, ok = ScrollTarget(catalog, []Field{FieldName}, "zzz")
	assert.False(t, ok)

	_, ok = ScrollTarget(nil, []Field{FieldAll}, "")
	assert.False(t, ok)
}
