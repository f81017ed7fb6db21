// Package config contains the YAML configuration of the tally CLI and
// the logger construction helpers.
package config

import (
	"fmt"
	"os"

	"github.com/tallylabs/tally-go/pkg/ledger/storage"
	"gopkg.in/yaml.v3"
)

// Version is the version of the node, set at build time.
var Version string

// Config top level struct representing the config for the application.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
}

// ApplicationConfiguration config specific to the application.
type ApplicationConfiguration struct {
	LogLevel        string                  `yaml:"LogLevel"`
	LogPath         string                  `yaml:"LogPath"`
	DBConfiguration storage.DBConfiguration `yaml:"DBConfiguration"`
}

// DefaultConfig returns the config used when no configuration file is
// given: in-memory storage, info logging to stderr.
func DefaultConfig() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			LogLevel: "info",
			DBConfiguration: storage.DBConfiguration{
				Type: "inmemory",
			},
		},
	}
}

// LoadFile loads a config from the given path. A missing path yields
// the default config.
func LoadFile(configPath string) (Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(configData, &config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	return config, nil
}
