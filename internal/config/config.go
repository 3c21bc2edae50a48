// Package config loads server configuration from the environment.
package config

import (
	"os"
	"time"
)

// OIDC holds the optional SSO provider settings. SSO is enabled when Issuer
// is non-empty.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Config is the full server configuration.
type Config struct {
	Addr          string
	DatabaseURL   string
	BaseURL       string
	SweepInterval time.Duration
	OIDC          OIDC
}

// Load reads configuration from environment variables, applying defaults
// where a value is optional.
func Load() Config {
	sweep := time.Minute
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			sweep = d
		}
	}

	return Config{
		Addr:          env("ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		BaseURL:       env("BASE_URL", "http://localhost:8080"),
		SweepInterval: sweep,
		OIDC: OIDC{
			Issuer:       os.Getenv("OIDC_ISSUER"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
