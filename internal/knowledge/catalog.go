package knowledge

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when a catalog file fails schema, version or
// structural checks.
var ErrInvalidCatalog = errors.New("invalid catalog")

// SupportedMajor is the only catalog major version this build understands.
const SupportedMajor = "v1"

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

var (
	catalogSchemaOnce sync.Once
	catalogSchema     *jsonschema.Schema
	catalogSchemaErr  error
)

// Catalog is the on-disk representation of a module set.
type Catalog struct {
	Version         string   `json:"version" yaml:"version"`
	FallbackModules []string `json:"fallback_modules,omitempty" yaml:"fallback_modules,omitempty"`
	Modules         []Module `json:"modules" yaml:"modules"`
}

// Graph builds an in-memory source over the catalog's modules.
func (c *Catalog) Graph() *Graph {
	return NewGraph(c.Modules)
}

// LoadCatalog reads and parses a YAML or JSON catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a YAML or JSON catalog, validates it against the
// embedded schema, checks its version and runs the structural checks.
func ParseCatalog(data []byte) (*Catalog, error) {
	// YAML is a superset of JSON, so one decoder handles both.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: normalize: %v", ErrInvalidCatalog, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: normalize: %v", ErrInvalidCatalog, err)
	}

	schema, err := compiledCatalogSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	v, err := CheckVersion(c.Version)
	if err != nil {
		return nil, err
	}
	c.Version = v

	if err := Validate(c.Modules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &c, nil
}

// CheckVersion normalizes a catalog version to canonical semver and rejects
// versions whose major is not SupportedMajor.
func CheckVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: version %q is not valid semver", ErrInvalidCatalog, v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return "", fmt.Errorf("%w: unsupported catalog version %s (want %s.x.y)", ErrInvalidCatalog, v, SupportedMajor)
	}
	return semver.Canonical(v), nil
}

// EncodeYAML renders the catalog as YAML.
func (c *Catalog) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func compiledCatalogSchema() (*jsonschema.Schema, error) {
	catalogSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(catalogSchemaJSON))
		if err != nil {
			catalogSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		const url = "schema://catalog.json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			catalogSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		catalogSchema, catalogSchemaErr = c.Compile(url)
	})
	return catalogSchema, catalogSchemaErr
}
