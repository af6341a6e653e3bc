// Package config provides the TOML file configuration for the CLI and its
// XDG default paths.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/spartan-system/spartan-api/internal/errors"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Redis RedisConfig `toml:"redis"`
}

// RedisConfig maps storage-related settings.
type RedisConfig struct {
	Address  *string `toml:"address"`
	Password *string `toml:"password"`
	DB       *int    `toml:"db"`
}

// Load reads a TOML config from the given path. A missing file is not an
// error; flag defaults apply.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, errors.InvalidArgument("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, errors.Wrap(err, "failed to stat config")
	}

	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, errors.Wrap(err, "failed to decode config")
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "spartan", "config.toml")
}
