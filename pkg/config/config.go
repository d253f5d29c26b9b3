package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process-wide configuration shared by all handlers
type Config struct {
	// AWS backends
	BucketName string
	TableName  string
	Region     string

	// Local backends, used when the AWS ones are not configured
	LocalImagesRoot string
	FeedbackDBPath  string
	LocalPublicURL  string
	LocalSigningKey string

	// Optional with defaults
	PromptTemplatesFile string
	PresignTTL          time.Duration
	ListPageSize        int32
	ListenAddr          string
	HandlerName         string
	LogLevel            string
	DebugMode           bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Set defaults
		LocalPublicURL: "http://localhost:8080",
		PresignTTL:     3600 * time.Second,
		ListenAddr:     ":8080",
		LogLevel:       "info",
	}

	cfg.BucketName = os.Getenv("BUCKET_NAME")
	cfg.TableName = os.Getenv("TABLE_NAME")
	cfg.Region = os.Getenv("AWS_REGION")
	cfg.LocalImagesRoot = os.Getenv("LOCAL_IMAGES_ROOT")
	cfg.FeedbackDBPath = os.Getenv("FEEDBACK_DB_PATH")
	cfg.LocalSigningKey = os.Getenv("LOCAL_SIGNING_KEY")
	cfg.PromptTemplatesFile = os.Getenv("PROMPT_TEMPLATES_FILE")
	cfg.HandlerName = os.Getenv("HANDLER_NAME")

	if publicURL := os.Getenv("LOCAL_PUBLIC_URL"); publicURL != "" {
		cfg.LocalPublicURL = strings.TrimRight(publicURL, "/")
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	if ttl := os.Getenv("PRESIGN_TTL_SECONDS"); ttl != "" {
		val, err := strconv.Atoi(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid PRESIGN_TTL_SECONDS: %w", err)
		}
		cfg.PresignTTL = time.Duration(val) * time.Second
	}

	if pageSize := os.Getenv("LIST_PAGE_SIZE"); pageSize != "" {
		val, err := strconv.ParseInt(pageSize, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid LIST_PAGE_SIZE: %w", err)
		}
		cfg.ListPageSize = int32(val)
	}

	if debug := os.Getenv("DEBUG_MODE"); debug != "" {
		val, err := strconv.ParseBool(debug)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG_MODE: %w", err)
		}
		cfg.DebugMode = val
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.PresignTTL <= 0 {
		return fmt.Errorf("presign TTL must be positive")
	}
	// S3 caps presigned URLs at seven days
	if c.PresignTTL > 7*24*time.Hour {
		return fmt.Errorf("presign TTL must not exceed 7 days")
	}
	if c.ListPageSize < 0 || c.ListPageSize > 1000 {
		return fmt.Errorf("list page size must be between 0 and 1000")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LocalImagesRoot != "" {
		if _, err := url.Parse(c.LocalPublicURL); err != nil {
			return fmt.Errorf("invalid LOCAL_PUBLIC_URL: %w", err)
		}
		// Create images root folder if it doesn't exist
		if err := os.MkdirAll(c.LocalImagesRoot, 0755); err != nil {
			return fmt.Errorf("failed to create images root folder: %w", err)
		}
	}

	return nil
}

// UsesS3 reports whether images go to S3 rather than the local store
func (c *Config) UsesS3() bool {
	return c.BucketName != ""
}

// UsesDynamoDB reports whether feedback goes to DynamoDB rather than SQLite
func (c *Config) UsesDynamoDB() bool {
	return c.TableName != ""
}
