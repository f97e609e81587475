// Package config loads fenkey settings from the environment.
package config

import (
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "FENKEY"

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"

	DefaultEnv = EnvDev
)

// Environment selects logging behaviour.
type Environment string

// Validate reports whether e is a known environment.
func (e Environment) Validate() error {
	if e != EnvDev && e != EnvProd {
		return errors.Errorf("environment must be either dev or prod, got %q", string(e))
	}
	return nil
}

// Config holds every setting the CLI reads.
type Config struct {
	Environment Environment `default:"dev" split_words:"true"`

	// TablePath names an external key table; empty means the published table.
	TablePath string `split_words:"true"`
	BookPath  string `split_words:"true"`
	DBDir     string `envconfig:"DB_DIR"`

	CacheSize int `default:"4096" split_words:"true"`
	Workers   int `default:"8"`
}

// Load reads a .env file at path when path is non-empty, then the process
// environment. Variables already set in the environment win over the file.
func Load(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return Config{}, errors.Wrapf(err, "load %s", path)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "process env")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := c.Environment.Validate(); err != nil {
		return errors.Wrap(err, "environment validation")
	}
	if c.CacheSize < 0 {
		return errors.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
