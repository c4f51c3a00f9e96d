package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required,oneof=development staging production"`
	Port        string `validate:"required,numeric"`
	LogLevel    string `validate:"required"`
	Upload      UploadConfig
	RateLimit   RateLimitConfig
}

// UploadConfig holds multipart upload configuration
type UploadConfig struct {
	// Dir is where uploaded files are materialized. Empty means the
	// system temporary directory.
	Dir          string
	MaxBodyBytes int64 `validate:"gt=0"`
}

// RateLimitConfig holds rate limiting configuration for the local gateway
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"gt=0"`
	Burst             int     `validate:"gte=1"`
}

var validate = validator.New()

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("UPLOAD_DIR", "")
	viper.SetDefault("MAX_BODY_BYTES", 10*1024*1024)
	viper.SetDefault("RATE_LIMIT_RPS", 100.0)
	viper.SetDefault("RATE_LIMIT_BURST", 200)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Upload: UploadConfig{
			Dir:          viper.GetString("UPLOAD_DIR"),
			MaxBodyBytes: viper.GetInt64("MAX_BODY_BYTES"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
