package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env  string
	Port string

	DBDriver       string
	DatabaseDSN    string
	DBMaxOpenConns int

	StoreTimeout    time.Duration
	StoreMaxRetries int
	StoreRetryBase  time.Duration

	RedisAddr     string
	RedisPassword string

	JWTSecret string
	TokenTTL  time.Duration

	CodeTTL           time.Duration
	CodeMaxAttempts   int
	CodeAttemptWindow time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	SortNearby bool

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string

	LogLevel string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may carry everything
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:       getEnv("DB_DRIVER", DriverPostgres),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10, &errs),

		StoreTimeout:    getEnvAsDuration("STORE_TIMEOUT", 5*time.Second, &errs),
		StoreMaxRetries: getEnvAsInt("STORE_MAX_RETRIES", 3, &errs),
		StoreRetryBase:  getEnvAsDuration("STORE_RETRY_BASE", 50*time.Millisecond, &errs),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getEnvAsDuration("TOKEN_TTL", 24*time.Hour, &errs),

		CodeTTL:           getEnvAsDuration("CODE_TTL", 30*time.Minute, &errs),
		CodeMaxAttempts:   getEnvAsInt("CODE_MAX_ATTEMPTS", 5, &errs),
		CodeAttemptWindow: getEnvAsDuration("CODE_ATTEMPT_WINDOW", 15*time.Minute, &errs),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 1, &errs),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 5, &errs),

		SortNearby: getEnvAsBool("SORT_NEARBY", true, &errs),

		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPPort:  getEnvAsInt("SMTP_PORT", 587, &errs),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		FromEmail: getEnv("FROM_EMAIL", "noreply@scooter-rental.local"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET required"))
	}
	if cfg.RedisAddr == "" {
		errs = append(errs, fmt.Errorf("REDIS_ADDR required"))
	}
	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseDSN == "" {
			errs = append(errs, fmt.Errorf("DATABASE_DSN required"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %v", errs)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultVal
	}
	return val
}

func getEnvAsFloat(key string, defaultVal float64, errs *[]error) float64 {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool, errs *[]error) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultVal
	}
	return val
}

// getEnvAsDuration accepts Go durations ("90s") or a bare integer of minutes.
func getEnvAsDuration(key string, defaultVal time.Duration, errs *[]error) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	if mins, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(mins) * time.Minute
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultVal
	}
	return val
}
