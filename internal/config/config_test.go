package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoad(t *testing.T) {
	// Save original environment
	originalEnv := make(map[string]string)
	envVars := []string{
		"PORT",
		"ENVIRONMENT",
		"LOG_LEVEL",
		"UPLOAD_DIR",
		"MAX_BODY_BYTES",
		"RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST",
	}

	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}

	// Restore environment after test
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(t *testing.T, config *Config)
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			check: func(t *testing.T, config *Config) {
				if config.Port != "8080" {
					t.Errorf("Expected default port 8080, got %s", config.Port)
				}
				if config.Environment != "development" {
					t.Errorf("Expected default environment development, got %s", config.Environment)
				}
				if config.LogLevel != "info" {
					t.Errorf("Expected default log level info, got %s", config.LogLevel)
				}
				if config.Upload.Dir != "" {
					t.Errorf("Expected empty default upload dir, got %s", config.Upload.Dir)
				}
				if config.Upload.MaxBodyBytes != 10*1024*1024 {
					t.Errorf("Expected default max body bytes 10485760, got %d", config.Upload.MaxBodyBytes)
				}
				if config.RateLimit.RequestsPerSecond != 100.0 {
					t.Errorf("Expected default rate limit 100, got %f", config.RateLimit.RequestsPerSecond)
				}
				if config.RateLimit.Burst != 200 {
					t.Errorf("Expected default burst 200, got %d", config.RateLimit.Burst)
				}
			},
		},
		{
			name: "custom configuration",
			envVars: map[string]string{
				"PORT":             "9000",
				"ENVIRONMENT":      "production",
				"LOG_LEVEL":        "debug",
				"UPLOAD_DIR":       "/tmp/uploads",
				"MAX_BODY_BYTES":   "1048576",
				"RATE_LIMIT_RPS":   "5",
				"RATE_LIMIT_BURST": "10",
			},
			check: func(t *testing.T, config *Config) {
				if config.Port != "9000" {
					t.Errorf("Expected port 9000, got %s", config.Port)
				}
				if config.Environment != "production" {
					t.Errorf("Expected environment production, got %s", config.Environment)
				}
				if config.Upload.Dir != "/tmp/uploads" {
					t.Errorf("Expected upload dir /tmp/uploads, got %s", config.Upload.Dir)
				}
				if config.Upload.MaxBodyBytes != 1048576 {
					t.Errorf("Expected max body bytes 1048576, got %d", config.Upload.MaxBodyBytes)
				}
				if config.RateLimit.RequestsPerSecond != 5 {
					t.Errorf("Expected rate limit 5, got %f", config.RateLimit.RequestsPerSecond)
				}
				if config.RateLimit.Burst != 10 {
					t.Errorf("Expected burst 10, got %d", config.RateLimit.Burst)
				}
			},
		},
		{
			name: "invalid port",
			envVars: map[string]string{
				"PORT": "not-a-port",
			},
			wantErr: true,
		},
		{
			name: "invalid environment",
			envVars: map[string]string{
				"ENVIRONMENT": "qa",
			},
			wantErr: true,
		},
		{
			name: "invalid max body bytes",
			envVars: map[string]string{
				"MAX_BODY_BYTES": "0",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				os.Unsetenv(key)
			}
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			config, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.check(t, config)
		})
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("BRIDGE_TEST_VALUE", "present")
	defer os.Unsetenv("BRIDGE_TEST_VALUE")

	if got := GetEnv("BRIDGE_TEST_VALUE", "fallback"); got != "present" {
		t.Errorf("Expected present, got %s", got)
	}
	if got := GetEnv("BRIDGE_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %s", got)
	}
}

func TestServerlessUploadDir(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"empty stays empty", "", ""},
		{"tmp root allowed", "/tmp", "/tmp"},
		{"tmp subdirectory allowed", "/tmp/uploads", "/tmp/uploads"},
		{"relative path rejected", "./data/uploads", ""},
		{"absolute path rejected", "/var/uploads", ""},
		{"tmp prefix trick rejected", "/tmpfoo", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serverlessUploadDir(tt.dir); got != tt.want {
				t.Errorf("serverlessUploadDir(%q) = %q, want %q", tt.dir, got, tt.want)
			}
		})
	}
}

func TestIsRunningInLambda(t *testing.T) {
	original := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
	defer func() {
		if original != "" {
			os.Setenv("AWS_LAMBDA_FUNCTION_NAME", original)
		} else {
			os.Unsetenv("AWS_LAMBDA_FUNCTION_NAME")
		}
	}()

	os.Unsetenv("AWS_LAMBDA_FUNCTION_NAME")
	if isRunningInLambda() {
		t.Error("Expected false without AWS_LAMBDA_FUNCTION_NAME")
	}

	os.Setenv("AWS_LAMBDA_FUNCTION_NAME", "request-echo")
	if !isRunningInLambda() {
		t.Error("Expected true with AWS_LAMBDA_FUNCTION_NAME set")
	}
}

func TestSetupLogging(t *testing.T) {
	logger := SetupLogging(&Config{LogLevel: "debug"})
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}

	logger = SetupLogging(&Config{LogLevel: "nonsense"})
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected fallback to info level, got %s", logger.GetLevel())
	}
}
