// Package config handles playmap configuration from a YAML file and
// PLAYMAP_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level playmap configuration.
type Config struct {
	Lang    string `yaml:"lang"`
	Country string `yaml:"country"`
	// Throttle is requests per second; 0 disables throttling.
	Throttle float64       `yaml:"throttle"`
	Timeout  time.Duration `yaml:"timeout"`
	// Retries after the first attempt. Negative disables retrying.
	Retries   int    `yaml:"retries"`
	UserAgent string `yaml:"user_agent"`
	CacheSize int    `yaml:"cache_size"`
	Workers   int    `yaml:"workers"`
	// DB is the SQLite file documents and records are saved to. Empty
	// disables persistence.
	DB string `yaml:"db"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Load reads path when it is non-empty, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.Country == "" {
		c.Country = "us"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Retries == 0 {
		c.Retries = 2
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 128
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("PLAYMAP_LANG", &c.Lang)
	str("PLAYMAP_COUNTRY", &c.Country)
	str("PLAYMAP_USER_AGENT", &c.UserAgent)
	str("PLAYMAP_DB", &c.DB)
	for key, dst := range map[string]*int{
		"PLAYMAP_RETRIES":    &c.Retries,
		"PLAYMAP_CACHE_SIZE": &c.CacheSize,
		"PLAYMAP_WORKERS":    &c.Workers,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	if v, ok := lookup("PLAYMAP_THROTTLE"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PLAYMAP_THROTTLE: %w", err)
		}
		c.Throttle = f
	}
	if v, ok := lookup("PLAYMAP_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PLAYMAP_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}
