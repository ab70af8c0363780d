package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/strataforge/agsi/pkg/errors"
)

// Config carries user defaults applied when commands build new documents.
// Every field is optional; zero values fall back to the built-in defaults.
type Config struct {
	// DefaultAuthor is stamped into fileAuthor on created documents.
	DefaultAuthor string `toml:"default_author"`
	// DefaultFormat is the output format used by convert when --format is
	// not given.
	DefaultFormat string `toml:"default_format"`
	// Software overrides the fileSoftware stamp.
	Software string `toml:"software"`
}

func defaultConfig() *Config {
	return &Config{DefaultFormat: "json"}
}

// defaultConfigPath returns ~/.config/agsi/config.toml, or "" when the home
// directory cannot be determined.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "agsi", "config.toml")
}

// loadConfig reads the TOML configuration at path. An empty path means the
// default location; a missing file at the default location is not an error,
// but an explicitly named file must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return defaultConfig(), nil
		}
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultConfig(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "load config %s", path)
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "json"
	}
	return cfg, nil
}
