package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the pipeline core consumes from the environment.
// An optional YAML file (PIPELINE_CONFIG) supplies defaults; environment
// variables always win.
type Config struct {
	SourcePath   string `yaml:"data_source_path"`
	SourceURL    string `yaml:"data_source_url"`
	SourceFormat string `yaml:"data_source_format"`

	WebhookURL      string        `yaml:"delivery_webhook_url"`
	DeliveryTimeout time.Duration `yaml:"-"`

	GeminiAPIKey string `yaml:"-"`
	GeminiModel  string `yaml:"gemini_model"`

	StagingBackend string `yaml:"staging_backend"`
	StagingDir     string `yaml:"staging_dir"`

	BindAddr       string `yaml:"api_bind_addr"`
	AIRateLimitRPM int    `yaml:"ai_rate_limit_rpm"`
}

// yamlConfig mirrors Config for the fields a file may set, with the
// durations and ints in their serialized form.
type yamlConfig struct {
	Config             `yaml:",inline"`
	DeliveryTimeoutSec int `yaml:"delivery_timeout_sec"`
}

// Load builds a Config from the optional PIPELINE_CONFIG file plus the
// environment.
func Load() (*Config, error) {
	c := &Config{
		SourceFormat:    "json",
		DeliveryTimeout: 10 * time.Second,
		GeminiModel:     "gemini-1.5-flash",
		StagingBackend:  "fs",
		StagingDir:      ".tmp",
		BindAddr:        ":8080",
		AIRateLimitRPM:  30,
	}

	if path := strings.TrimSpace(os.Getenv("PIPELINE_CONFIG")); path != "" {
		if err := c.applyFile(path); err != nil {
			return nil, err
		}
	}

	c.SourcePath = getEnv("DATA_SOURCE_PATH", c.SourcePath)
	c.SourceURL = getEnv("DATA_SOURCE_URL", c.SourceURL)
	c.SourceFormat = strings.ToLower(getEnv("DATA_SOURCE_FORMAT", c.SourceFormat))
	c.WebhookURL = getEnv("DELIVERY_WEBHOOK_URL", c.WebhookURL)
	c.DeliveryTimeout = time.Duration(getInt("DELIVERY_TIMEOUT_SEC", int(c.DeliveryTimeout/time.Second))) * time.Second
	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnv("GEMINI_MODEL", c.GeminiModel)
	c.StagingBackend = strings.ToLower(getEnv("STAGING_BACKEND", c.StagingBackend))
	c.StagingDir = getEnv("STAGING_DIR", c.StagingDir)
	c.BindAddr = getEnv("API_BIND_ADDR", c.BindAddr)
	c.AIRateLimitRPM = getInt("AI_RATE_LIMIT_RPM", c.AIRateLimitRPM)

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read PIPELINE_CONFIG: %w", err)
	}
	var fc yamlConfig
	fc.Config = *c
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse PIPELINE_CONFIG: %w", err)
	}
	*c = fc.Config
	if fc.DeliveryTimeoutSec > 0 {
		c.DeliveryTimeout = time.Duration(fc.DeliveryTimeoutSec) * time.Second
	}
	return nil
}

func (c *Config) validate() error {
	switch c.SourceFormat {
	case "json", "csv":
	default:
		return fmt.Errorf("DATA_SOURCE_FORMAT must be json or csv, got %q", c.SourceFormat)
	}
	switch c.StagingBackend {
	case "fs", "sqlite", "memory":
	default:
		return fmt.Errorf("STAGING_BACKEND must be fs, sqlite, or memory, got %q", c.StagingBackend)
	}
	if c.DeliveryTimeout <= 0 {
		return fmt.Errorf("DELIVERY_TIMEOUT_SEC must be positive")
	}
	if c.AIRateLimitRPM <= 0 {
		return fmt.Errorf("AI_RATE_LIMIT_RPM must be positive")
	}
	if c.StagingDir == "" {
		return fmt.Errorf("STAGING_DIR cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}
