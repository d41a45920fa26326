// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketSourceFiles() string
	IsMinIOEnabled() bool
}

// PickingConfig provides settings for the picking module.
type PickingConfig interface {
	// GetDefaultWarehouse is the warehouse tag stamped on every ingested item.
	GetDefaultWarehouse() string
	// GetMaxImportBytes limits the size of uploaded workbooks.
	GetMaxImportBytes() int64
}

// =============================================================================
// Concrete Configuration
// =============================================================================

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env              string
	HTTPAddr         string
	DatabaseURL      string
	JWTAccessSecret  string
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	MinIOEndpoint    string
	MinIOAccessKey   string
	MinIOSecretKey   string
	MinIOUseSSL      bool
	MinIOBucketFiles string
	DefaultWarehouse string
	MaxImportBytes   int64
}

// Load reads configuration from the environment, honoring a .env file when
// present. Missing required values produce an error rather than a fallback.
func Load() (*Config, error) {
	_ = godotenv.Load()

	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	jwtSecret := getEnv("JWT_ACCESS_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	maxImportBytes, err := strconv.ParseInt(getEnv("MAX_IMPORT_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_IMPORT_BYTES: %w", err)
	}

	return &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      databaseURL,
		JWTAccessSecret:  jwtSecret,
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDS", "true"), "true"),
		MinIOEndpoint:    getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:   getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:      strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOBucketFiles: getEnv("MINIO_BUCKET_SOURCE_FILES", "picking-source-files"),
		DefaultWarehouse: getEnv("PICKING_DEFAULT_WAREHOUSE", "PRINCIPAL"),
		MaxImportBytes:   maxImportBytes,
	}, nil
}

// GetDatabaseURL implements DatabaseConfig.
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// GetJWTAccessSecret implements JWTConfig.
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// GetHTTPAddr implements HTTPConfig.
func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }

// GetCORSAllowAll implements HTTPConfig.
func (c *Config) GetCORSAllowAll() bool { return c.CORSAllowAll }

// GetCORSOrigins implements HTTPConfig.
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// GetCORSAllowCreds implements HTTPConfig.
func (c *Config) GetCORSAllowCreds() bool { return c.CORSAllowCreds }

// GetMinIOEndpoint implements MinIOConfig.
func (c *Config) GetMinIOEndpoint() string { return c.MinIOEndpoint }

// GetMinIOAccessKey implements MinIOConfig.
func (c *Config) GetMinIOAccessKey() string { return c.MinIOAccessKey }

// GetMinIOSecretKey implements MinIOConfig.
func (c *Config) GetMinIOSecretKey() string { return c.MinIOSecretKey }

// GetMinIOUseSSL implements MinIOConfig.
func (c *Config) GetMinIOUseSSL() bool { return c.MinIOUseSSL }

// GetMinioBucketSourceFiles implements MinIOConfig.
func (c *Config) GetMinioBucketSourceFiles() string { return c.MinIOBucketFiles }

// IsMinIOEnabled implements MinIOConfig. Archival is optional; an empty
// endpoint disables it without failing startup.
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// GetDefaultWarehouse implements PickingConfig.
func (c *Config) GetDefaultWarehouse() string { return c.DefaultWarehouse }

// GetMaxImportBytes implements PickingConfig.
func (c *Config) GetMaxImportBytes() int64 { return c.MaxImportBytes }

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
