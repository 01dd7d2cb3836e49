package config

import (
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Scan holds settings for finding duplicates
type Scan struct {
	Path     string   `koanf:"path" toml:"path"`
	MinSize  int64    `koanf:"min_size" toml:"min_size"`
	Detector []string `koanf:"detector" toml:"detector"`
}

// Resolve holds traversal settings
type Resolve struct {
	IgnoreBasenames bool `koanf:"ignore_basenames" toml:"ignore_basenames"`
	NoPrompt        bool `koanf:"no_prompt" toml:"no_prompt"`
}

// Cache holds scratch cache settings
type Cache struct {
	Path string `koanf:"path" toml:"path"`
}

// Audit holds journal settings. An empty Dir means the XDG state directory.
type Audit struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
}

// Config is the effective dupekeep configuration
type Config struct {
	Scan    Scan    `koanf:"scan" toml:"scan"`
	Resolve Resolve `koanf:"resolve" toml:"resolve"`
	Cache   Cache   `koanf:"cache" toml:"cache"`
	Audit   Audit   `koanf:"audit" toml:"audit"`
}

// Validate checks values that decoding alone cannot catch.
func (c *Config) Validate() error {
	if c.Scan.MinSize < 0 {
		return errors.Newf(errors.ErrConfigValid, "scan.min_size must not be negative, got %d", c.Scan.MinSize).
			WithDetail("key", "scan.min_size")
	}
	if len(c.Scan.Detector) == 0 || c.Scan.Detector[0] == "" {
		return errors.New(errors.ErrConfigValid, "scan.detector must name a command").
			WithDetail("key", "scan.detector")
	}
	if c.Cache.Path == "" {
		return errors.New(errors.ErrConfigValid, "cache.path must not be empty").
			WithDetail("key", "cache.path")
	}
	return nil
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
	}
	return data, nil
}
