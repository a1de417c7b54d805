package reference

import (
	"fmt"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadFile layers a YAML reference document over Default. A position,
// sport or tier entry present in the file replaces the default entry as a
// whole; absent entries keep their defaults. The result is validated.
func LoadFile(path string) (*Data, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadReference, path, err)
	}

	data := Default()
	if err := k.UnmarshalWithConf("", data, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadReference, path, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// LoadCatalog builds a Catalog from an optional default document and
// optional per-season documents keyed by season year. An empty
// defaultPath uses the built-in tables.
func LoadCatalog(defaultPath string, seasonPaths map[string]string) (*Catalog, error) {
	def := Default()
	if defaultPath != "" {
		d, err := LoadFile(defaultPath)
		if err != nil {
			return nil, err
		}
		def = d
	}

	seasons := make(map[int]*Data, len(seasonPaths))
	for key, path := range seasonPaths {
		season, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: season key %q is not a year", ErrLoadReference, key)
		}
		d, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		seasons[season] = d
	}
	return NewCatalog(def, seasons), nil
}
