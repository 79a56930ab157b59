package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	defaultDatabasePath   = "catalog.db"
	defaultPort           = "8080"
	defaultAllowedOrigin  = "http://localhost:5173"
	defaultWormsCachedURL = "https://marinespecies.ifremer.fr/rest"
	defaultWormsLiveURL   = "https://www.marinespecies.org/rest"
	defaultWormsTimeout   = 10
)

type Config struct {
	// database path
	DatabasePath string

	// HTTP server settings
	Port              string
	CORSAllowedOrigin string

	// WoRMS registry endpoints, cached mirror first
	WormsCachedBaseURL string
	WormsLiveBaseURL   string
	WormsTimeout       time.Duration
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	cfg := Config{
		DatabasePath:       getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		Port:               getEnvOrDefault("PORT", defaultPort),
		CORSAllowedOrigin:  getEnvOrDefault("CORS_ALLOWED_ORIGIN", defaultAllowedOrigin),
		WormsCachedBaseURL: getEnvOrDefault("WORMS_CACHED_BASE_URL", defaultWormsCachedURL),
		WormsLiveBaseURL:   getEnvOrDefault("WORMS_LIVE_BASE_URL", defaultWormsLiveURL),
		WormsTimeout:       time.Duration(getEnvIntOrDefault("WORMS_TIMEOUT_SECONDS", defaultWormsTimeout)) * time.Second,
	}
	return cfg, nil
}
