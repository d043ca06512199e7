package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/mailtriage/")
	v.AddConfigPath("$HOME/.mailtriage")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAILTRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Embedding provider defaults
	v.SetDefault("embedding.provider", "static")

	// OpenAI embedding defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "text-embedding-3-small")

	// Gemini embedding defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "text-embedding-004")

	// Bedrock embedding defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "amazon.titan-embed-text-v2:0")

	// Analysis defaults
	v.SetDefault("analysis.similarity_threshold", 0.7)
	v.SetDefault("analysis.max_body_size", 16384)
	v.SetDefault("analysis.max_workers", 4)
	v.SetDefault("analysis.muted_domains", []string{})

	// Model artifact defaults
	v.SetDefault("model.dir", "models")
	v.SetDefault("model.classifier_file", "urgency_model.json")
	v.SetDefault("model.vocabulary_file", "vectorizer.json")

	// Deadline resolver defaults
	v.SetDefault("resolver.workday_start_hour", 9)
	v.SetDefault("resolver.workday_end_hour", 17)
	v.SetDefault("resolver.timezone", "America/New_York")

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.enabled", true)
	v.SetDefault("store.ttl", "168h")
	v.SetDefault("store.cleanup_frequency", "1h")
	v.SetDefault("store.sqlite_path", "/data/mailtriage.db")
	v.SetDefault("store.mysql_dsn", "user:password@tcp(localhost:3306)/mailtriage")

	// Inbox defaults
	v.SetDefault("inbox.dir", "/var/spool/mailtriage")
	v.SetDefault("inbox.poll_interval", "30s")
	v.SetDefault("inbox.batch_size", 25)

	// Calendar defaults
	v.SetDefault("calendar.type", "log")
	v.SetDefault("calendar.webhook_url", "")

	// Training defaults
	v.SetDefault("training.dataset_size", 500)
	v.SetDefault("training.vocabulary_size", 96)
	v.SetDefault("training.max_depth", 5)
	v.SetDefault("training.seed", 42)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	raw := c.v.GetString(key)
	d := c.v.GetDuration(key)
	if d == 0 && raw != "" && raw != "0" && raw != "0s" {
		return 0, fmt.Errorf("invalid duration for key %s: %s", key, raw)
	}
	return d, nil
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
