package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration (secret shared with the identity provider)
	JWTSecret string

	// S3 configuration
	S3Bucket  string
	AWSRegion string
}

// LoadConfig creates a new Config instance from environment variables.
// Development and test environments fall back to local defaults; production
// requires every sensitive value to be set explicitly.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "recipebook"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       0,
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		S3Bucket:      getEnv("S3_BUCKET_NAME", "recipebook-images"),
		AWSRegion:     os.Getenv("AWS_REGION"),
	}

	if err := ValidateConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that the configuration is complete for the environment.
func ValidateConfig(cfg *Config, env Environment) error {
	var missing []string

	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if env == Production {
		if cfg.DBUser == "" {
			missing = append(missing, "DB_USER")
		}
		if cfg.DBPassword == "" {
			missing = append(missing, "DB_PASSWORD")
		}
		if cfg.AWSRegion == "" {
			missing = append(missing, "AWS_REGION")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
