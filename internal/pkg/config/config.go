package config

import (
	"fmt"
	"os"
	"time"
)

type ServerConfig struct {
	Port        string
	MetricsAddr string
	PprofAddr   string
}

type StoreConfig struct {
	// Path is the directory the local key/value store writes to.
	Path string
	// CacheTTL bounds how long a value read from disk stays in memory.
	CacheTTL time.Duration
}

type SessionConfig struct {
	Name   string
	Secret string
}

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Session SessionConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("SERVER_PORT", "8091"),
			MetricsAddr: getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:   getEnvOrDefault("PPROF_ADDR", ":6060"),
		},
		Store: StoreConfig{
			Path:     getEnvOrDefault("STORE_PATH", "./data/store"),
			CacheTTL: getDurationOrDefault("STORE_CACHE_TTL", 30*time.Second),
		},
		Session: SessionConfig{
			Name:   getEnvOrDefault("SESSION_NAME", "tabrail_session"),
			Secret: getEnvOrDefault("SESSION_SECRET", "tabrail-dev-secret"),
		},
	}

	if cfg.Store.Path == "" {
		return nil, fmt.Errorf("STORE_PATH must not be empty")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}
