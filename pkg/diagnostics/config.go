package diagnostics

import (
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/reactive/pkg/errors"
)

// Config represents the optional reactive.yaml configuration.
type Config struct {
	// Counters enables the runtime counters.
	Counters bool `yaml:"counters,omitempty"`
	// Verbose switches the default error handler to verbose logging
	// (stack traces included).
	Verbose bool `yaml:"verbose,omitempty"`
}

// LoadOptional reads reactive.yaml from dir if present. A missing file
// yields a zero Config, not an error.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "reactive.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if goerrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read reactive.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reactive.yaml: %w", err)
	}

	return &cfg, nil
}

// Apply activates the configuration.
func (c *Config) Apply() {
	if c.Counters {
		Enable()
	}
	if c.Verbose {
		errors.SetHandler(&errors.LogHandler{Verbose: true})
	}
}

// Dump renders a snapshot as YAML for debug output.
func Dump(s Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}
