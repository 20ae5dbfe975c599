// Package config loads the server configuration from a YAML file, creating
// the file with defaults on first run.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DataDir holds the SQLite database file.
	DataDir string `yaml:"data_dir"`

	// StaticDir is served at / for the single-page frontend.
	StaticDir string `yaml:"static_dir"`

	// JWTSecret signs bearer tokens. When empty a random secret is generated
	// at startup, which invalidates outstanding tokens on restart.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTLHours is the bearer token lifetime.
	TokenTTLHours int `yaml:"token_ttl_hours"`

	// SweepCron schedules the pending-reservation expiry sweep.
	SweepCron string `yaml:"sweep_cron"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:        ":8080",
		DataDir:       "./data",
		StaticDir:     "./static",
		TokenTTLHours: 24,
		SweepCron:     "@every 5m",
	}
}

// Load reads the config file at path. A missing file is created from
// defaults with 0600 permissions and the defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Secret returns the configured JWT secret, generating a random one when
// unset. The second return value reports whether the secret was generated.
func (c *Config) Secret() ([]byte, bool) {
	if c.JWTSecret != "" {
		return []byte(c.JWTSecret), false
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return []byte(hex.EncodeToString(buf)), true
}
