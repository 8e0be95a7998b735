package utils

import (
	"daassist-web/models"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "change-this-session-secret-in-production"

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	flattenNestedConfig(v)

	return decode(v)
}

// decode unmarshals and validates a populated viper instance
func decode(v *viper.Viper) (*models.Config, error) {
	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Durations may come from JSON as strings ("30s", "12h")
	for key, target := range map[string]*time.Duration{
		"api_timeout": &config.APITimeout,
		"session_ttl": &config.SessionTTL,
	} {
		raw := v.GetString(key)
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s format: %w", key, err)
		}
		*target = d
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "DAAssist")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8081")

	v.SetDefault("api_base_url", "http://localhost:8000/api/v1")
	v.SetDefault("api_timeout", "30s")

	v.SetDefault("session_secret", defaultSessionSecret)
	v.SetDefault("session_cookie_name", "daassist_session")
	v.SetDefault("session_ttl", "12h")
	v.SetDefault("secure_cookies", false)

	v.SetDefault("storage_backend", models.StorageMemory)

	v.SetDefault("aws_region", "eu-south-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("cors_origins", []string{"*"})

	v.SetDefault("sweep_schedule", "@every 10m")

	v.SetDefault("basePath", "/app")

	v.SetDefault("tables", []string{"sessions"})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.SessionSecret == defaultSessionSecret && c.AppEnv == "production" {
		return fmt.Errorf("SESSION_SECRET must be set in production environment")
	}

	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}

	switch c.StorageBackend {
	case models.StorageMemory, models.StorageDynamoDB:
	default:
		return fmt.Errorf("unknown storage_backend %q", c.StorageBackend)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}

	if c.AppEnv == "production" && c.StorageBackend == models.StorageDynamoDB && c.AWSAccessKeyID == "" {
		fmt.Println("No AWS credentials provided, assuming IAM role is used")
	}

	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	sections := map[string]string{
		"app.name":                  "app_name",
		"app.version":               "app_version",
		"app.env":                   "app_env",
		"app.host":                  "app_host",
		"app.port":                  "app_port",
		"api.base_url":              "api_base_url",
		"api.timeout":               "api_timeout",
		"session.secret":            "session_secret",
		"session.cookie_name":       "session_cookie_name",
		"session.ttl":               "session_ttl",
		"session.secure_cookies":    "secure_cookies",
		"session.storage_backend":   "storage_backend",
		"aws.region":                "aws_region",
		"aws.access_key_id":         "aws_access_key_id",
		"aws.secret_access_key":     "aws_secret_access_key",
		"aws.dynamodb_endpoint":     "dynamodb_endpoint",
		"aws.dynamodb_table_prefix": "dynamodb_table_prefix",
		"logging.level":             "log_level",
		"logging.format":            "log_format",
		"worker.sweep_schedule":     "sweep_schedule",
	}
	for nested, flat := range sections {
		if v.IsSet(nested) {
			v.Set(flat, v.Get(nested))
		}
	}

	if v.IsSet("cors.origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}
