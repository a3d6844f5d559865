// Package manifest defines the gangway.yaml config contract shared by the
// CLI and its tests.
package manifest

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest drives one generation run.
type Manifest struct {
	// Out is the output file path for the rendered declarations.
	Out string `yaml:"out"`
	// Indent is the member indentation width; 0 means the default of 2.
	Indent int `yaml:"indent"`
	// InterfacePrefix is prepended to interface names at render time,
	// e.g. "I". Empty keeps canonical names.
	InterfacePrefix string `yaml:"interfacePrefix"`

	Go      *GoSource `yaml:"go"`
	OpenAPI *OpenAPI  `yaml:"openapi"`
}

// GoSource configures the Go source frontend.
type GoSource struct {
	Dir      string   `yaml:"dir"`
	Packages []string `yaml:"packages"`
	Roots    []string `yaml:"roots"`
}

// OpenAPI configures the OpenAPI document frontend.
type OpenAPI struct {
	File string `yaml:"file"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest '%v'", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest '%v'", path)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid manifest '%v'", path)
	}
	return &m, nil
}

// Validate checks structural requirements before a run starts.
func (m *Manifest) Validate() error {
	if m.Out == "" {
		return errors.New("'out' is required")
	}
	if m.Go == nil && m.OpenAPI == nil {
		return errors.New("at least one of 'go' or 'openapi' must be configured")
	}
	if m.Go != nil && len(m.Go.Packages) == 0 {
		return errors.New("'go.packages' must name at least one package pattern")
	}
	if m.OpenAPI != nil && m.OpenAPI.File == "" {
		return errors.New("'openapi.file' is required")
	}
	if m.Indent < 0 {
		return errors.New("'indent' must not be negative")
	}
	return nil
}
