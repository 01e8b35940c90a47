package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Menu source kinds
const (
	MenuSourceMassPath = "masspath"
	MenuSourceFoodPro  = "foodpro"
)

// DefaultHalls is the order dining halls are fetched and listed in
var DefaultHalls = []string{"Berkshire", "Franklin", "Hampshire", "Worcester"}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Identity provider token verification
	JWTSecret string
	JWTIssuer string

	// Menu upstream
	MenuSource   string
	MenuAPIURL   string
	FoodProURL   string
	MenuCacheTTL time.Duration
	HTTPTimeout  time.Duration
	Halls        []string

	// Preference inference
	GeminiAPIKey string
	GeminiModel  string

	// Meal photos
	S3Bucket  string
	AWSRegion string

	// Feedback rate limiting
	FeedbackLimit  int
	FeedbackWindow time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := defaults()

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		ServerPort:     "8080",
		ServerHost:     "0.0.0.0",
		CORSOrigins:    []string{"http://localhost:3000"},
		DBDriver:       "postgres",
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "postgres",
		DBName:         "masspath",
		DBSSLMode:      "disable",
		SQLitePath:     "masspath.db",
		RedisURL:       "redis://localhost:6379",
		MenuSource:     MenuSourceMassPath,
		MenuAPIURL:     "http://localhost:5000/api",
		FoodProURL:     "https://umassdining.com/foodpro-menu-ajax",
		MenuCacheTTL:   15 * time.Minute,
		HTTPTimeout:    10 * time.Second,
		Halls:          append([]string(nil), DefaultHalls...),
		GeminiModel:    "gemini-1.5-flash",
		S3Bucket:       "masspath-meal-photos",
		AWSRegion:      "us-east-1",
		FeedbackLimit:  30,
		FeedbackWindow: time.Minute,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// loadFromEnv overlays every non-secret setting that is present in the environment
func loadFromEnv(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.ServerHost = getEnv("SERVER_HOST", cfg.ServerHost)
	cfg.CORSOrigins = getList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", cfg.DBSSLMode)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.RedisDB = getInt("REDIS_DB", cfg.RedisDB)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.MenuSource = strings.ToLower(getEnv("MENU_SOURCE", cfg.MenuSource))
	cfg.MenuAPIURL = strings.TrimRight(getEnv("MENU_API_URL", cfg.MenuAPIURL), "/")
	cfg.FoodProURL = getEnv("FOODPRO_URL", cfg.FoodProURL)
	cfg.MenuCacheTTL = getDuration("MENU_CACHE_TTL", cfg.MenuCacheTTL)
	cfg.HTTPTimeout = getDuration("HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.Halls = getList("DINING_HALLS", cfg.Halls)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.S3Bucket = getEnv("S3_BUCKET_NAME", cfg.S3Bucket)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.FeedbackLimit = getInt("FEEDBACK_RATE_LIMIT", cfg.FeedbackLimit)
	cfg.FeedbackWindow = getDuration("FEEDBACK_RATE_WINDOW", cfg.FeedbackWindow)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
}

// loadCIConfig loads configuration for CI environment using ONLY GitHub Actions secrets
func loadCIConfig(cfg *Config) error {
	loadFromEnv(cfg)

	// GitHub Actions secrets - use environment variables directly
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" && cfg.DBDriver == "postgres" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.GeminiAPIKey = os.Getenv("TEST_GEMINI_API_KEY")

	return nil
}

// loadDevConfig loads configuration for development and test. Secrets come
// from the environment first and Docker secret files second.
func loadDevConfig(cfg *Config) {
	loadFromEnv(cfg)

	cfg.DBPassword = envOrSecret("DB_PASSWORD", "db_password")
	cfg.JWTSecret = envOrSecret("JWT_SECRET", "jwt_secret")
	cfg.RedisPassword = envOrSecret("REDIS_PASSWORD", "redis_password")
	cfg.GeminiAPIKey = envOrSecret("GEMINI_API_KEY", "gemini_api_key")
}

// loadProdConfig loads configuration for production environment. Secrets are
// read ONLY from Docker secrets.
func loadProdConfig(cfg *Config) {
	loadFromEnv(cfg)

	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.GeminiAPIKey = readSecret("gemini_api_key")
}

// DSN builds the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// MigrationURL builds the postgres URL used by golang-migrate
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func envOrSecret(key, secret string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return readSecret(secret)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
