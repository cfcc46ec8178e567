package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. It is built once in
// main and handed to the packages that need it.
type Config struct {
	AppHost     string
	AppPort     string
	FrontendURL string

	DBHost     string
	DBPort     string
	DBDatabase string
	DBUsername string
	DBPassword string
	DBSSLMode  string

	JWTSecret string
	JWTTTL    time.Duration

	// EncryptionKey protects national ids at rest. Empty disables it.
	EncryptionKey string

	OmiseSecretKey string
	OmiseBaseURL   string

	LogWorkers int
	// LogLevel is debug, info, warn or error.
	LogLevel string
}

// Load reads the .env file when present and then the process environment.
// A missing .env file is reported but not fatal.
func Load() (*Config, error) {
	envErr := godotenv.Load()

	cfg := &Config{
		AppHost:     getEnv("APP_HOST", "0.0.0.0"),
		AppPort:     getEnv("APP_PORT", "3001"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBDatabase: os.Getenv("DB_DATABASE"),
		DBUsername: os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		EncryptionKey: os.Getenv("ENCRYPTION_KEY"),

		OmiseSecretKey: os.Getenv("OMISE_SECRET_KEY"),
		OmiseBaseURL:   getEnv("OMISE_BASE_URL", "https://api.omise.co"),

		LogWorkers: getInt("LOG_WORKERS", 2),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	return cfg, envErr
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
