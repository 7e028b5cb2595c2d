package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-fusion/internal/domain"
)

const defaultAllowedOrigins = "http://localhost:5173,http://localhost:4173,http://localhost:3000"

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string
	LogLevel        string
	MergeLogPath    string
	AllowedOrigins  []string
	PreviewMaxWidth int
	SessionIdleTTL  time.Duration
	SupabaseURL     string
	SupabaseKey     string
	SupabaseBucket  string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// PORT wins over SERVER_PORT so the server runs unchanged on PaaS hosts.
		ServerPort:      getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		MergeLogPath:    getEnvOrDefault("MERGE_LOG_PATH", "merge_log.txt"),
		AllowedOrigins:  splitList(getEnvOrDefault("ALLOWED_ORIGINS", defaultAllowedOrigins)),
		PreviewMaxWidth: getEnvIntOrDefault("PREVIEW_MAX_WIDTH", 1200),
		SessionIdleTTL:  time.Duration(getEnvIntOrDefault("SESSION_IDLE_MINUTES", 120)) * time.Minute,
		SupabaseURL:     getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:     getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseBucket:  getEnvOrDefault("SUPABASE_BUCKET", "merged-pdfs"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMergeLogPath returns the path of the append-only merge log
func (c *AppConfig) GetMergeLogPath() string {
	return c.MergeLogPath
}

// GetAllowedOrigins returns the CORS origins of the front end
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetPreviewMaxWidth returns the widest thumbnail the server renders
func (c *AppConfig) GetPreviewMaxWidth() int {
	return c.PreviewMaxWidth
}

// GetSessionIdleTTL returns how long an untouched session survives
func (c *AppConfig) GetSessionIdleTTL() time.Duration {
	return c.SessionIdleTTL
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseBucket returns the bucket merged outputs are published to
func (c *AppConfig) GetSupabaseBucket() string {
	return c.SupabaseBucket
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
