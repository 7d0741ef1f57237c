// Package config loads the ProtonDB server configuration from a YAML file.
package config

import (
	"github.com/adfharrison1/protondb/pkg/storage"
)

// DefaultFileName is the configuration file used when no path is given
const DefaultFileName = "protondb.yaml"

// Config holds the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Debug          bool   `yaml:"debug"`
	MaxConnections int    `yaml:"maxConnections"`
}

// StorageConfig holds storage engine configuration.
type StorageConfig struct {
	Root          string `yaml:"root"`
	MaxPathLength int    `yaml:"maxPathLength"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           9090,
			Debug:          false,
			MaxConnections: 100,
		},
		Storage: StorageConfig{
			Root:          storage.DefaultRoot(),
			MaxPathLength: storage.DefaultMaxPathLength,
		},
	}
}

// StorageOptions converts the storage section into engine options
func (c *Config) StorageOptions() []storage.StorageOption {
	return []storage.StorageOption{
		storage.WithDataDir(c.Storage.Root),
		storage.WithMaxPathLength(c.Storage.MaxPathLength),
		storage.WithDebug(c.Server.Debug),
	}
}
