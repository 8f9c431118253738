package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "lernportal"

// ClientFile represents the learner's TOML configuration file.
type ClientFile struct {
	Portal PortalConfig `toml:"portal"`
	Learn  LearnConfig  `toml:"learn"`
}

// PortalConfig maps backend connection settings.
type PortalConfig struct {
	URL   *string `toml:"url"`
	Token *string `toml:"token"`
}

// LearnConfig maps session settings.
type LearnConfig struct {
	MaxLineLength *int    `toml:"max-line-length"`
	Seed          *uint64 `toml:"seed"`
	Workers       *int    `toml:"workers"`
}

// Client is the resolved client configuration after defaults.
type Client struct {
	PortalURL     string
	Token         string
	MaxLineLength int
	Seed          uint64 // 0 = time-seeded
	Workers       int
	DBPath        string
	LogPath       string
}

// DefaultClient returns the settings used when no file or flag sets a value.
func DefaultClient() Client {
	return Client{
		PortalURL:     "http://localhost:8080",
		MaxLineLength: 96,
		Workers:       2,
		DBPath:        DefaultDBPath(),
		LogPath:       DefaultLogPath(),
	}
}

// LoadClientFile reads a TOML config from the given path. Missing file is not an error.
func LoadClientFile(path string) (ClientFile, error) {
	if path == "" {
		return ClientFile{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ClientFile{}, nil
		}
		return ClientFile{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg ClientFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return ClientFile{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the values set in the file onto c.
func (f ClientFile) Apply(c Client) Client {
	if f.Portal.URL != nil {
		c.PortalURL = *f.Portal.URL
	}
	if f.Portal.Token != nil {
		c.Token = *f.Portal.Token
	}
	if f.Learn.MaxLineLength != nil && *f.Learn.MaxLineLength > 3 {
		c.MaxLineLength = *f.Learn.MaxLineLength
	}
	if f.Learn.Seed != nil {
		c.Seed = *f.Learn.Seed
	}
	if f.Learn.Workers != nil && *f.Learn.Workers > 0 {
		c.Workers = *f.Learn.Workers
	}
	return c
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

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultDBPath returns the default path of the offline SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, "lernportal.db")
}

// DefaultLogPath returns where the learner client writes its log.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appName, "lernen.log")
}
