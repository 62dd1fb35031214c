package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                string
	Environment         string
	DatabaseURL         string
	SessionSecret       string
	SessionTTL          time.Duration
	SessionCookieName   string
	CookieSecure        bool
	MigrationsDir       string
	RunMigrations       bool
	RunSeed             bool
	SeedAdminEmail      string
	SeedAdminPassword   string
	SeedAdminName       string
	AllowSelfSignup     bool
	MaxBodyBytes        int64
	MaxUploadBytes      int64
	RateLimitPerMinute  int
	MetricsEnabled      bool
	MaintenanceInterval time.Duration
	AIEnabled           bool
	GeminiAPIKey        string
	AIModel             string
	AITimeout           time.Duration
	LogLevel            string
	LogFormat           string
}

func Load() Config {
	return Config{
		Addr:                getEnv("APP_ADDR", ":8080"),
		Environment:         getEnv("APP_ENV", "development"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SessionSecret:       getEnv("SESSION_SECRET", ""),
		SessionTTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "hrflow_session"),
		CookieSecure:        getEnvBool("COOKIE_SECURE", false),
		MigrationsDir:       getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:             getEnvBool("RUN_SEED", true),
		SeedAdminEmail:      getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:   getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedAdminName:       getEnv("SEED_ADMIN_NAME", "Administrator"),
		AllowSelfSignup:     getEnvBool("ALLOW_SELF_SIGNUP", true),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
		MaintenanceInterval: getEnvDuration("MAINTENANCE_INTERVAL", time.Hour),
		AIEnabled:           getEnvBool("AI_ENABLED", os.Getenv("GEMINI_API_KEY") != ""),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		AIModel:             getEnv("AI_MODEL", "gemini-2.5-flash"),
		AITimeout:           getEnvDuration("AI_TIMEOUT", 20*time.Second),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.IsProduction() {
		if len(c.SessionSecret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 characters in production")
		}
		if !c.CookieSecure {
			return fmt.Errorf("COOKIE_SECURE must be enabled in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminEmail) != "" && len(c.SeedAdminPassword) < 12 {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be at least 12 characters in production")
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes < c.MaxBodyBytes {
		return fmt.Errorf("MAX_UPLOAD_BYTES must not be smaller than MAX_BODY_BYTES")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.AIEnabled && strings.TrimSpace(c.GeminiAPIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set when AI_ENABLED is true")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	return nil
}
