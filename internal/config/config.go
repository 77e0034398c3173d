package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port     string
		GinMode  string
		LogLevel string
	}

	Storage struct {
		Backend string
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Objects ObjectsConfig

	Sync struct {
		Enabled  bool
		Schedule string
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}
}

// ObjectsConfig describes the S3-compatible endpoint avatars are stored on.
// An empty endpoint disables object storage entirely.
type ObjectsConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "duetcal")
	config.DB.Password = getEnv("DB_PASSWORD", "duetcal_password")
	config.DB.Name = getEnv("DB_NAME", "duetcal_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")
	config.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	config.Storage.Backend = getEnv("STORAGE_BACKEND", "postgres")

	config.JWT.Secret = getEnv("JWT_SECRET", "development-secret-change-me")
	config.JWT.TTL = getEnvAsDuration("JWT_TTL", 24*time.Hour)

	config.Objects.Endpoint = getEnv("OBJECTS_ENDPOINT", "")
	config.Objects.AccessKey = getEnv("OBJECTS_ACCESS_KEY", "")
	config.Objects.SecretKey = getEnv("OBJECTS_SECRET_KEY", "")
	config.Objects.Bucket = getEnv("OBJECTS_BUCKET", "duetcal-avatars")
	config.Objects.UseSSL = getEnvAsBool("OBJECTS_USE_SSL", false)

	config.Sync.Enabled = getEnvAsBool("SYNC_STAMP_ENABLED", false)
	config.Sync.Schedule = getEnv("SYNC_STAMP_SCHEDULE", "@every 15m")

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// GetAdminDatabaseURL returns a connection URL against the maintenance
// database, used by the migrate command to create the application database.
func (c *Config) GetAdminDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/postgres?sslmode=" + c.DB.SSLMode
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
