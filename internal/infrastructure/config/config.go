package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	DatabasePath string // SQLite file, created on first start
	JWTSecret    string // HS256 secret for bearer tokens
	TokenTTL     time.Duration
	CORSOrigin   string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv builds the server config from a variable lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	addr, err := required(getenv, "SERVER_ADDRESS")
	if err != nil {
		return nil, err
	}
	shutdown, err := requiredDuration(getenv, "SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}
	secret, err := required(getenv, "JWT_SECRET")
	if err != nil {
		return nil, err
	}
	ttl, err := time.ParseDuration(getenvDefault(getenv, "TOKEN_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL is not a valid duration: %w", err)
	}

	return &Config{
		ServerAddress:   addr,
		ShutdownTimeout: shutdown,
		DatabasePath:    getenvDefault(getenv, "DATABASE_PATH", "lernportal.db"),
		JWTSecret:       secret,
		TokenTTL:        ttl,
		CORSOrigin:      getenvDefault(getenv, "CORS_ORIGIN", "*"),
	}, nil
}

func required(getenv func(string) string, k string) (string, error) {
	v := getenv(k)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", k)
	}
	return v, nil
}

func requiredDuration(getenv func(string) string, k string) (time.Duration, error) {
	v, err := required(getenv, k)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getenvDefault(getenv func(string) string, k, fallback string) string {
	if v := getenv(k); v != "" {
		return v
	}
	return fallback
}
