package config

import (
	"os"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	defaultAddr        = ":8080"
	defaultResourceURL = "https://jsonplaceholder.typicode.com/posts"
	defaultTimeoutSec  = 10
	defaultRetryMax    = 2
)

type Config struct {
	Addr        string `toml:"addr"`
	ResourceURL string `toml:"resource_url"`
	TimeoutSec  int    `toml:"timeout_seconds"`
	RetryMax    int    `toml:"retry_max"`
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Load reads the TOML config at path. A missing file is not an error: every
// field falls back to its default, as do empty or whitespace-only values.
func Load(path string) (Config, error) {
	cfg := Config{}
	raw, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parse %s", path)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(err, "read %s", path)
	}

	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	cfg.ResourceURL = strings.TrimSpace(cfg.ResourceURL)
	if cfg.ResourceURL == "" {
		cfg.ResourceURL = defaultResourceURL
	}
	if !govalidator.IsURL(cfg.ResourceURL) {
		return Config{}, errors.Errorf("resource_url %q is not a valid URL", cfg.ResourceURL)
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = defaultTimeoutSec
	}
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = defaultRetryMax
	}
	return cfg, nil
}
