package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/resfold/resfold/pkg/errors"
)

// Config holds defaults loaded from a TOML file. Command-line flags
// always take precedence over values set here.
type Config struct {
	// Width is the default maximum output width.
	Width int `toml:"width"`
	// Strategy is the default output strategy name.
	Strategy string `toml:"strategy"`
	// Subformats maps file extensions to sub-encoding names,
	// e.g. {"txt" = "lines", "int" = "int"}.
	Subformats map[string]string `toml:"subformats"`
	// Exts restricts scanning to the listed extensions when set.
	Exts []string `toml:"exts"`
}

// defaultConfigPath returns the conventional config location, honoring
// XDG_CONFIG_HOME when set.
func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "resfold", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "resfold", "config.toml")
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file is not an error; a missing
// explicit file is.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file not readable: %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config file: %s", path)
	}
	return cfg, nil
}
