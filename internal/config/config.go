package config

import (
	"os"
	"time"
)

type Config struct {
	Port            string
	WardrobeAPIURL  string
	LocalStorePath  string
	SessionDuration time.Duration
	AllowedOrigins  string
	LogLevel        string
	Environment     string
}

func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		WardrobeAPIURL:  getEnv("WARDROBE_API_URL", "http://localhost:8080/api"),
		LocalStorePath:  getEnv("LOCAL_STORE_PATH", "wardrobe.db"),
		SessionDuration: getDurationEnv("SESSION_DURATION", 30*24*time.Hour),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		Environment:     getEnv("ENVIRONMENT", "production"),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
