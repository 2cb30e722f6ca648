// Package config loads application settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultCurrency is used when APP_CURRENCY is unset.
const DefaultCurrency = "USD"

// Settings holds process-wide configuration.
type Settings struct {
	Environment     string
	Currency        string
	SendEmails      bool
	HTTPAddr        string
	RedisAddr       string
	OTELHost        string
	MetricsInterval time.Duration
}

// Load reads settings from the environment, falling back to defaults.
func Load() Settings {
	return Settings{
		Environment:     getEnv("APP_ENV", "dev"),
		Currency:        getEnv("APP_CURRENCY", DefaultCurrency),
		SendEmails:      getEnv("APP_SEND_EMAILS", "0") == "1",
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		OTELHost:        getEnv("OTEL_HOST", ""),
		MetricsInterval: getEnvDuration("METRICS_INTERVAL", 24*time.Hour),
	}
}

func getEnv(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func getEnvDuration(name string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
