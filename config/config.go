package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIBaseURL      string
	FetchTimeoutSec int
	MaxRetries      int
	RetryBaseMs     int
	MaxConcurrency  int
	RateLimitMs     int

	RefreshFirst  bool
	OutputDir     string
	CSVOutputPath string

	SnapshotToDB     bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	Verbose bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:5000"),
		FetchTimeoutSec: getEnvInt("FETCH_TIMEOUT_SEC", 20),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		RetryBaseMs:     getEnvInt("RETRY_BASE_MS", 500),
		MaxConcurrency:  getEnvInt("MAX_CONCURRENCY", 4),
		RateLimitMs:     getEnvInt("RATE_LIMIT_MS", 250),

		RefreshFirst:  getEnvBool("REFRESH_FIRST", false),
		OutputDir:     getEnv("OUTPUT_DIR", "./output"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/listings_snapshot.csv"),

		SnapshotToDB:     getEnvBool("SNAPSHOT_TO_DB", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "radar"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "radar123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		Verbose: getEnvBool("VERBOSE", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// FetchTimeout returns the per-request timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
