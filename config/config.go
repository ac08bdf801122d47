package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	PostgresURL string
	RedisAddr   string

	EmailAPIURL  string
	EmailAPIKey  string
	SheetsAPIURL string
	SheetsAPIKey string

	AdminUsername     string
	AdminPasswordHash string
	SessionTTL        time.Duration

	JaegerEndpoint string
}

// Load reads configuration from the environment. A .env file is picked up
// for local development when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:          getenvDefault("HTTP_ADDR", ":8080"),
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		EmailAPIURL:       os.Getenv("EMAIL_API_URL"),
		EmailAPIKey:       os.Getenv("EMAIL_API_KEY"),
		SheetsAPIURL:      os.Getenv("SHEETS_API_URL"),
		SheetsAPIKey:      os.Getenv("SHEETS_API_KEY"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JaegerEndpoint:    getenvDefault("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}

	for name, value := range map[string]string{
		"POSTGRES_URL":        cfg.PostgresURL,
		"REDIS_ADDR":          cfg.RedisAddr,
		"EMAIL_API_URL":       cfg.EmailAPIURL,
		"SHEETS_API_URL":      cfg.SheetsAPIURL,
		"ADMIN_USERNAME":      cfg.AdminUsername,
		"ADMIN_PASSWORD_HASH": cfg.AdminPasswordHash,
	} {
		if value == "" {
			return Config{}, fmt.Errorf("missing required env var: %s", name)
		}
	}

	sessionTTL, err := time.ParseDuration(getenvDefault("SESSION_TTL", "12h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = sessionTTL

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
