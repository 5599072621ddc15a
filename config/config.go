package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ArtifactSource   string
	ArtifactDir      string
	ArtifactManifest string
	ArtifactVersion  string
	LoadTimeoutMs    int
	StrictSchema     bool

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	HTTPAddr            string
	PredictionCacheSize int

	BatchConcurrency int
	BatchRateLimitMs int

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ArtifactSource:   strings.ToLower(getEnv("ARTIFACT_SOURCE", "file")),
		ArtifactDir:      getEnv("ARTIFACT_DIR", "./model_store"),
		ArtifactManifest: getEnv("ARTIFACT_MANIFEST", "manifest.yaml"),
		ArtifactVersion:  getEnv("ARTIFACT_VERSION", ""),
		LoadTimeoutMs:    getEnvInt("ARTIFACT_LOAD_TIMEOUT_MS", 30000),
		StrictSchema:     getEnvBool("STRICT_SCHEMA", true),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "hpp"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "hpp123"),
		PostgresDB:       getEnv("POSTGRES_DB", "hpp_artifacts"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		PredictionCacheSize: getEnvInt("PREDICTION_CACHE_SIZE", 1024),

		BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 4),
		BatchRateLimitMs: getEnvInt("BATCH_RATE_LIMIT_MS", 0),

		LogLevel: getEnv("LOG_LEVEL", "info"),
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

// LoadTimeout is the upper bound for fetching and decoding all artifacts.
func (c *Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutMs) * time.Millisecond
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
