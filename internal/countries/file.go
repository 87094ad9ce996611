package countries

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// catalogFile is the on-disk layout of a custom catalog:
//
//	[[country]]
//	name = "Canada"
//	iso2 = "ca"
//	dial_code = "1"
//	priority = 1
//	area_codes = ["416", "647"]
type catalogFile struct {
	Countries []Country `toml:"country"`
}

// LoadFile reads a catalog from a TOML file and validates it.
func LoadFile(path string) ([]Country, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(content)
}

// Parse decodes a TOML catalog and validates it.
func Parse(content []byte) ([]Country, error) {
	var f catalogFile
	if err := toml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	result := make([]Country, len(f.Countries))
	for i, c := range f.Countries {
		result[i] = normalize(c)
	}

	if err := Validate(result); err != nil {
		return nil, err
	}
	return result, nil
}
