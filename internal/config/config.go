package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Database selection: sqlite (default, path-based) or postgres/mysql
	// (URL-based).
	DatabaseType string
	DatabaseURL  string
	DatabasePath string

	MigrationsPath string

	// Seed files for an empty database: the connections word bank and the
	// two crossword clue pools.
	WordBankPath       string
	PrimaryCluesPath   string
	SecondaryCluesPath string

	CrosswordSize   int
	PuzzleRetention time.Duration

	// Admin API auth.
	JWTSecret     string
	TokenDuration time.Duration
	AdminUsername string
	AdminPassword string

	// SES email delivery (optional; empty from-address disables it).
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	EmailDebug   bool
}

// Load reads configuration from the environment (and .env, if present) with
// sensible defaults
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:         getEnv("PORT", "8080"),
		DatabaseType:       getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:        getEnv("DB_URL", ""),
		DatabasePath:       getEnv("DB_PATH", "./wordgrid.db"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "./migrations"),
		WordBankPath:       getEnv("WORD_BANK_PATH", "./cwords.json"),
		PrimaryCluesPath:   getEnv("CLUES_PATH", "./short_word_clues.json"),
		SecondaryCluesPath: getEnv("CLUES2_PATH", "./short_word_clues2.json"),
		CrosswordSize:      getEnvInt("CROSSWORD_SIZE", 8),
		PuzzleRetention:    getEnvDuration("PUZZLE_RETENTION", 7*24*time.Hour),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenDuration:      getEnvDuration("TOKEN_DURATION", 12*time.Hour),
		AdminUsername:      getEnv("ADMIN_USERNAME", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		SESFromName:        getEnv("SES_FROM_NAME", "Wordgrid"),
		EmailDebug:         getEnv("EMAIL_DEBUG", "") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
