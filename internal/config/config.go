// Package config loads the server's YAML configuration file, mirroring the
// shape of the original SpatioConfig (server/storage/aof/logging sections).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig controls the TCP listener.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StorageConfig controls per-collection R-tree construction.
type StorageConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// AofConfig is carried for shape-compatibility with the original; AOF
// replay and compaction are out of scope and this server never reads it.
type AofConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	SyncMode string `yaml:"sync_mode"`
}

// LoggingConfig holds the logging section. spatiod prints Level at startup
// and always logs to stderr without filtering by level; Output and File are
// not read by the server.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
	File   string `yaml:"file"`
}

// Config is the full server configuration tree.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Aof     AofConfig     `yaml:"aof"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the built-in defaults, applied before any file or flag
// override.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           9851,
			MaxConnections: 1000,
			TimeoutSeconds: 0,
		},
		Storage: StorageConfig{
			MaxEntries: 16,
		},
		Aof: AofConfig{
			Enabled:  false,
			Path:     "spatio.aof",
			SyncMode: "everysec",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
		},
	}
}

// Load reads path and overlays it onto Default(); zero-valued fields in
// the file leave the default in place. A missing path is not an error —
// callers that only want flag-driven config can pass an empty path.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return cfg, err
	}
	applyOverrides(&cfg, fromFile)
	return cfg, nil
}

func applyOverrides(cfg *Config, override Config) {
	if override.Server.Host != "" {
		cfg.Server.Host = override.Server.Host
	}
	if override.Server.Port != 0 {
		cfg.Server.Port = override.Server.Port
	}
	if override.Server.MaxConnections != 0 {
		cfg.Server.MaxConnections = override.Server.MaxConnections
	}
	if override.Server.TimeoutSeconds != 0 {
		cfg.Server.TimeoutSeconds = override.Server.TimeoutSeconds
	}
	if override.Storage.MaxEntries != 0 {
		cfg.Storage.MaxEntries = override.Storage.MaxEntries
	}
	if override.Aof.Path != "" {
		cfg.Aof.Path = override.Aof.Path
	}
	if override.Aof.SyncMode != "" {
		cfg.Aof.SyncMode = override.Aof.SyncMode
	}
	cfg.Aof.Enabled = override.Aof.Enabled
	if override.Logging.Level != "" {
		cfg.Logging.Level = override.Logging.Level
	}
	if override.Logging.Output != "" {
		cfg.Logging.Output = override.Logging.Output
	}
	if override.Logging.File != "" {
		cfg.Logging.File = override.Logging.File
	}
}
