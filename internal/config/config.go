// Package config centralises environment configuration for the server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration for the NeuroWatch API.
type Config struct {
	Port              string
	JWTSecret         string
	StoreURL          string        // hosted record store base URL; empty selects another backend
	StoreAuth         string        // auth token for the hosted store, if any
	DatabaseURL       string        // Postgres DSN for the self-hosted document store
	WatchPollInterval time.Duration // vitals subscription poll cadence
	Dev               bool          // in-memory store, for local runs without any backend
}

// Load reads environment variables into Config with local-dev fallbacks.
func Load() Config {
	return Config{
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		StoreURL:          os.Getenv("STORE_URL"),
		StoreAuth:         os.Getenv("STORE_AUTH"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		WatchPollInterval: getDurationEnv("WATCH_POLL_INTERVAL", 3*time.Second),
		Dev:               getBoolEnv("DEV_MODE", false),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}
