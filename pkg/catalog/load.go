package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kitshelf/kitshelf/pkg/errors"
)

// Format is a catalog file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

type catalogFile struct {
	Kits Catalog `json:"kits" toml:"kits"`
}

// Load reads and validates a catalog file. The format is chosen by file
// extension: ".toml" or ".json".
func Load(path string) (Catalog, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = FormatTOML
	case ".json":
		format = FormatJSON
	default:
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "unsupported catalog file %q: want .toml or .json", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read catalog")
	}
	return Parse(data, format)
}

// Parse decodes and validates catalog data. JSON input may be a bare array
// of kits or an object with a "kits" array.
func Parse(data []byte, format Format) (Catalog, error) {
	var f catalogFile
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse TOML catalog")
		}
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		var err error
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &f.Kits)
		} else {
			err = json.Unmarshal(trimmed, &f)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse JSON catalog")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown catalog format %q", format)
	}

	if len(f.Kits) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog has no kits")
	}
	if err := f.Kits.Validate(); err != nil {
		return nil, err
	}
	return f.Kits, nil
}
