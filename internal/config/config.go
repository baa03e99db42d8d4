// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	APIURL           *url.URL
	Port             string
	GinMode          string
	LogFormat        string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Database. PostgreSQL is used when DBHost is set, SQLite otherwise.
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Authentication
	JWTSecret string
	TokenTTL  time.Duration

	// API behaviour
	PageSize         int
	DefaultAvatarURL string
}

// Load reads the configuration from the environment. Variables from a
// .env file in the working directory are loaded first, variables that
// are already set take precedence.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env file: %w", err)
	}

	return FromEnv()
}

// FromEnv reads the configuration from the environment without loading a .env file.
func FromEnv() (Config, error) {
	var problems []string

	apiURL, err := url.Parse(os.Getenv("API_URL"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("API_URL is not a valid URL: %v", err))
	}

	pageSize, err := getEnvInt("PAGE_SIZE", 20)
	if err != nil {
		problems = append(problems, err.Error())
	}

	ttl, err := getEnvDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		problems = append(problems, err.Error())
	}

	cfg := Config{
		APIURL:           apiURL,
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",

		DBPath:     getEnv("DB_PATH", "data/gorm.db"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  ttl,

		PageSize:         pageSize,
		DefaultAvatarURL: getEnv("DEFAULT_AVATAR_URL", "/static/avatars/default.png"),
	}

	if len(problems) > 0 {
		return cfg, fmt.Errorf("configuration could not be read:\n- %s", strings.Join(problems, "\n- "))
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration and reports all problems at once.
func (c Config) Validate() error {
	var problems []string

	if c.APIURL == nil || c.APIURL.String() == "" {
		problems = append(problems, "API_URL must be set")
	} else if c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		problems = append(problems, fmt.Sprintf("API_URL '%s' must be an absolute URL", c.APIURL))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET must be set")
	}

	if c.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid token lifetime %v: must be positive", c.TokenTTL))
	}

	if c.PageSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid page size %d: must be at least 1", c.PageSize))
	}

	if c.DBHost == "" && c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty when DB_HOST is not set")
	}

	if c.DBHost != "" && c.DBName == "" {
		problems = append(problems, "DB_NAME must be set when DB_HOST is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// UsePostgres reports if the backend stores its data in PostgreSQL.
func (c Config) UsePostgres() bool {
	return c.DBHost != ""
}

// PostgresDSN returns the connection string for PostgreSQL.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s", c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s '%s' is not a number", key, value)
	}
	return i, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s '%s' is not a duration", key, value)
	}
	return d, nil
}
