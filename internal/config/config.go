package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultFile is read by Load when it exists
const DefaultFile = "palette.json"

// Config holds all service configuration values.
type Config struct {
	Listen        string `json:"listen"`
	MetricsListen string `json:"metrics_listen"`
	AllowedOrigin string `json:"allowed_origin"`
	TimeoutSec    int    `json:"timeout_sec"`
	RateLimitRPM  int    `json:"rate_limit_rpm"` // per client; 0 disables

	// TrustedProxies are peer IPs whose X-Forwarded-For / X-Real-IP headers
	// name the client. Headers from anyone else are ignored.
	TrustedProxies []string `json:"trusted_proxies"`

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-"`
}

// Load builds the configuration from defaults, then the JSON file at path
// (skipped when missing), then LISTEN, METRICS_LISTEN, ALLOWED_ORIGIN and
// RATE_LIMIT_RPM.
// A file that exists but cannot be decoded is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Listen:        "127.0.0.1:5173",
		MetricsListen: "127.0.0.1:9090",
		AllowedOrigin: "http://localhost:5173",
		TimeoutSec:    10,
		RateLimitRPM:  120,
		Env:           LoadEnv(),
	}

	if path != "" {
		file, err := os.Open(path)
		switch {
		case err == nil:
			defer file.Close()
			if err := json.NewDecoder(file).Decode(cfg); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}

	cfg.Listen = getEnvOrDefault("LISTEN", cfg.Listen)
	cfg.MetricsListen = getEnvOrDefault("METRICS_LISTEN", cfg.MetricsListen)
	cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", cfg.AllowedOrigin)
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		rpm, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_RPM: %w", err)
		}
		cfg.RateLimitRPM = rpm
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.TrustedProxies = nil
		for _, ip := range strings.Split(v, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, ip)
			}
		}
	}

	return cfg, nil
}

// Timeout returns TimeoutSec as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Listen == "" {
		errs = append(errs, "listen address is required")
	} else if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		errs = append(errs, fmt.Sprintf("invalid listen address %q", c.Listen))
	}

	if c.MetricsListen != "" {
		if _, _, err := net.SplitHostPort(c.MetricsListen); err != nil {
			errs = append(errs, fmt.Sprintf("invalid metrics_listen address %q", c.MetricsListen))
		} else if c.MetricsListen == c.Listen {
			errs = append(errs, "metrics_listen must differ from listen")
		}
	}

	if c.TimeoutSec <= 0 {
		errs = append(errs, "timeout_sec must be positive")
	}

	if c.AllowedOrigin == "*" && c.Env != nil && c.Env.IsProduction() {
		errs = append(errs, `allowed_origin "*" is not allowed in production`)
	}

	for _, ip := range c.TrustedProxies {
		if net.ParseIP(ip) == nil {
			errs = append(errs, fmt.Sprintf("invalid trusted proxy %q", ip))
		}
	}

	if c.RateLimitRPM < 0 {
		errs = append(errs, "rate_limit_rpm must not be negative")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}
