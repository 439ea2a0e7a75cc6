package main

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/kestrelworks/gatehouse"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Host        string
	Port        int
	Environment string
	LogLevel    string

	// Database settings
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Storage settings
	StorageProvider  string
	StorageLocalPath string
	StorageLocalURL  string
	StorageS3Bucket  string
	StorageS3Region  string
	StorageS3BaseURL string

	// Upload policy settings
	AuthorizedExtensions         string
	AuthorizedExtensionsForStaff string
	MaxImageSizeKB               int
	MaxVideoSizeKB               int
	MaxAudioSizeKB               int
	MaxAttachmentSizeKB          int
	NewUserCanEmbedMedia         bool
	NewUserCanAttachFiles        bool
	AllowStaffAnyFileInPM        bool
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is merged in when present.
func LoadConfig(getenv func(string) string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		Host:        envString(getenv, "SERVER_HOST", "localhost"),
		Port:        envInt(getenv, "SERVER_PORT", 8080),
		Environment: envString(getenv, "ENVIRONMENT", "dev"),
		LogLevel:    envString(getenv, "LOG_LEVEL", "info"),

		// Database settings
		DBUser:     envString(getenv, "DB_USER", "postgres"),
		DBPassword: envString(getenv, "DB_PASSWORD", ""),
		DBHost:     envString(getenv, "DB_HOSTNAME", "localhost"),
		DBPort:     envString(getenv, "DB_PORT", "5432"),
		DBName:     envString(getenv, "DB_NAME", "postgres"),

		// Storage settings
		StorageProvider:  envString(getenv, "STORAGE_PROVIDER", "local"),
		StorageLocalPath: envString(getenv, "STORAGE_LOCAL_PATH", "./uploads"),
		StorageLocalURL:  envString(getenv, "STORAGE_LOCAL_URL", "http://localhost:8080/uploads"),
		StorageS3Bucket:  envString(getenv, "STORAGE_S3_BUCKET", ""),
		StorageS3Region:  envString(getenv, "STORAGE_S3_REGION", "us-east-1"),
		StorageS3BaseURL: envString(getenv, "STORAGE_S3_BASE_URL", ""),

		// Upload policy settings
		AuthorizedExtensions:         envString(getenv, "UPLOAD_AUTHORIZED_EXTENSIONS", "jpg|jpeg|png|gif|heic|heif|webp"),
		AuthorizedExtensionsForStaff: envString(getenv, "UPLOAD_AUTHORIZED_EXTENSIONS_FOR_STAFF", ""),
		MaxImageSizeKB:               envInt(getenv, "UPLOAD_MAX_IMAGE_SIZE_KB", 4096),
		MaxVideoSizeKB:               envInt(getenv, "UPLOAD_MAX_VIDEO_SIZE_KB", 102400),
		MaxAudioSizeKB:               envInt(getenv, "UPLOAD_MAX_AUDIO_SIZE_KB", 102400),
		MaxAttachmentSizeKB:          envInt(getenv, "UPLOAD_MAX_ATTACHMENT_SIZE_KB", 4096),
		NewUserCanEmbedMedia:         envBool(getenv, "UPLOAD_NEW_USER_CAN_EMBED_MEDIA", true),
		NewUserCanAttachFiles:        envBool(getenv, "UPLOAD_NEW_USER_CAN_ATTACH_FILES", true),
		AllowStaffAnyFileInPM:        envBool(getenv, "UPLOAD_ALLOW_STAFF_ANY_FILE_IN_PM", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// UploadSettings converts the flat env configuration into the domain
// settings object.
func (c *Config) UploadSettings() *gatehouse.SiteUploadSettings {
	return &gatehouse.SiteUploadSettings{
		AuthorizedExtensions:         c.AuthorizedExtensions,
		AuthorizedExtensionsForStaff: c.AuthorizedExtensionsForStaff,
		MaxImageSizeKB:               c.MaxImageSizeKB,
		MaxVideoSizeKB:               c.MaxVideoSizeKB,
		MaxAudioSizeKB:               c.MaxAudioSizeKB,
		MaxAttachmentSizeKB:          c.MaxAttachmentSizeKB,
		NewUserCanEmbedMedia:         c.NewUserCanEmbedMedia,
		NewUserCanAttachFiles:        c.NewUserCanAttachFiles,
	}
}

// validate checks configuration requirements.
func (c *Config) validate() error {
	if c.StorageProvider == "s3" && c.StorageS3Bucket == "" {
		return fmt.Errorf("STORAGE_S3_BUCKET must be set when STORAGE_PROVIDER is s3")
	}
	return nil
}

// Helper functions for loading environment variables with defaults.

func envString(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(getenv func(string) string, key string, defaultValue int) int {
	if value := getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func envBool(getenv func(string) string, key string, defaultValue bool) bool {
	if value := getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
