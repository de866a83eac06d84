package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port                     string
	DatabaseURL              string
	Version                  string
	LogLevel                 string
	TranslationCacheTTLHours int // Lifetime of translation cache rows
	SummaryCacheTTLMinutes   int // Lifetime of in-memory summary cache entries
	MaxMessageLength         int // Upper bound on message content size
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:                     getEnv("PORT", "8080"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		Version:                  getEnv("VERSION", "1.0.0"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		TranslationCacheTTLHours: getEnvInt("TRANSLATION_CACHE_TTL_HOURS", 24),
		SummaryCacheTTLMinutes:   getEnvInt("SUMMARY_CACHE_TTL_MINUTES", 5),
		MaxMessageLength:         getEnvInt("MAX_MESSAGE_LENGTH", 10000),
	}

	return config
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "converse").
		Str("version", c.Version).
		Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}
