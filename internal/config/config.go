// Package config loads skillshelf configuration from skillshelf.yaml with
// SKILLSHELF_* environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the conventional config file name, looked up in the
// working directory.
const DefaultFileName = "skillshelf.yaml"

// Config is the full skillshelf configuration.
type Config struct {
	// Bundle is the path to the bundle root.
	Bundle string `yaml:"bundle" env:"SKILLSHELF_BUNDLE"`

	Server ServerConfig `yaml:"server" envPrefix:"SKILLSHELF_SERVER_"`
	Lint   LintConfig   `yaml:"lint" envPrefix:"SKILLSHELF_LINT_"`
}

// ServerConfig configures the HTTP loader service.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" env:"ADDR"`
	// Watch rebuilds the index when bundle files change.
	Watch bool `yaml:"watch" env:"WATCH"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// LintConfig configures lint runs.
type LintConfig struct {
	// MaxDescription caps front matter description length.
	MaxDescription int `yaml:"max_description" env:"MAX_DESCRIPTION"`
	// OrphanWarnings warns about reference files SKILL.md never mentions.
	OrphanWarnings bool `yaml:"orphan_warnings" env:"ORPHAN_WARNINGS"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Bundle: ".",
		Server: ServerConfig{
			Addr:            ":8080",
			Watch:           true,
			ShutdownTimeout: 10 * time.Second,
		},
		Lint: LintConfig{
			MaxDescription: 1024,
			OrphanWarnings: true,
		},
	}
}

// Load reads configuration: defaults, then the YAML file at path (skipped if
// absent), then environment variables. A .env file in the working directory
// is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path) // #nosec G304 - caller-provided config path
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Bundle == "" {
		return fmt.Errorf("bundle path cannot be empty")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr cannot be empty")
	}
	if c.Lint.MaxDescription < 0 {
		return fmt.Errorf("lint max_description cannot be negative")
	}
	return nil
}
