package config

import (
	"os"
	"strconv"

	"gosurvey/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Report ReportConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds survey data source settings
type DataConfig struct {
	SurveyFile string
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	OutputFile string
	Threshold  float64 // minimum adoption percentage to highlight
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			SurveyFile: getEnvOrDefault("SURVEY_FILE", ""),
		},
		Report: ReportConfig{
			OutputFile: getEnvOrDefault("REPORT_FILE", "survey_report.md"),
			Threshold:  getEnvFloatOrDefault("REPORT_THRESHOLD", 30.0),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.SurveyFile == "" {
		return errors.ConfigInvalid("SURVEY_FILE is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
