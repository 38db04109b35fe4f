package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Cache    CacheConfig
	Server   ServerConfig
	LLM      LLMConfig
	Forms    FormsConfig
}

// DatabaseConfig holds MongoDB-related configuration
type DatabaseConfig struct {
	URI         string
	Name        string
	DialTimeout time.Duration
}

// CacheConfig holds Redis-related configuration
type CacheConfig struct {
	Addr   string
	JobTTL time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr      string
	MaxUploadSize int64
}

// LLMConfig holds text-generation backend configuration
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// FormsConfig holds form-provider API configuration
type FormsConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			URI:         getEnv("MONGO_URI", ""),
			Name:        getEnv("MONGO_DB", "formlo"),
			DialTimeout: getEnvAsDuration("MONGO_DIAL_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			Addr:   getEnv("REDIS_ADDR", ""),
			JobTTL: getEnvAsDuration("REDIS_JOB_TTL", 5*time.Minute),
		},
		Server: ServerConfig{
			HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
			MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_BYTES", 20<<20),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("LLM_API_KEY", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		},
		Forms: FormsConfig{
			BaseURL: getEnv("FORMS_BASE_URL", "https://forms.googleapis.com/v1"),
			Token:   getEnv("FORMS_API_TOKEN", ""),
			Timeout: getEnvAsDuration("FORMS_TIMEOUT", 30*time.Second),
		},
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return NewAppError("CONFIG_ERROR", "MONGO_URI is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "LLM_API_KEY is required", ErrInvalidInput)
	}
	if c.Forms.Token == "" {
		return NewAppError("CONFIG_ERROR", "FORMS_API_TOKEN is required", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
