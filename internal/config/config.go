package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"findash/internal/ingest"
	"findash/internal/validator"
)

// Config holds application configuration
type Config struct {
	// Server
	Port              string `validate:"required,numeric"`
	Env               string
	CORSAllowedOrigin string `validate:"required"`

	// Ingest
	RecordPolicy      string   `validate:"record_policy"`
	AllowedExtensions []string `validate:"min=1,dive,required,alphanum"`
	MaxUploadBytes    int64    `validate:"gt=0"`
	MaxReportedErrors int      `validate:"gte=0"`
}

// Policy returns the record write policy selected for this deployment.
func (c *Config) Policy() ingest.Policy {
	return ingest.Policy(c.RecordPolicy)
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),

		RecordPolicy:      strings.ToLower(getEnv("RECORD_POLICY", string(ingest.PolicyUpsert))),
		AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", "xlsx,xls")),
	}

	var err error
	if config.MaxUploadBytes, err = getEnvInt64("MAX_UPLOAD_BYTES", 16<<20); err != nil {
		return nil, err
	}
	maxErrors, err := getEnvInt64("MAX_REPORTED_ERRORS", 5)
	if err != nil {
		return nil, err
	}
	config.MaxReportedErrors = int(maxErrors)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

// splitList splits a comma separated value, lowercasing entries and
// dropping a leading dot so ".xlsx" and "xlsx" are equivalent.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(part)), ".")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
