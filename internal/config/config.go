package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMissingKey is wrapped by MissingKeyError.
var ErrMissingKey = errors.New("missing config key")

// MissingKeyError names a required key that is absent or empty.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing '%s' key in the YAML config file", e.Key)
}

func (*MissingKeyError) Unwrap() error {
	return ErrMissingKey
}

// Config is the generator configuration. It is built once by the CLI and
// passed down explicitly.
type Config struct {
	// File is the OpenAPI document to read.
	File string `yaml:"file"`
	// Output is the TypeScript file to write.
	Output string `yaml:"output"`
	// Server is emitted as the baseUrl constant.
	Server string `yaml:"server"`
	// Project is the display name used in the file header.
	Project string `yaml:"project"`
	// Sort orders endpoints by path then method instead of document order.
	Sort bool `yaml:"sort"`
}

var requiredKeys = []string{"file", "output", "server", "project"}

// Load reads the YAML config file at path.
func Load(path string) (*Config, error) {
	// #nosec G304 - path is supplied on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates config bytes. The first missing required key
// is reported as a *MissingKeyError.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, key := range requiredKeys {
		v, ok := raw[key]
		if !ok || v == nil || v == "" {
			return nil, &MissingKeyError{Key: key}
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}
