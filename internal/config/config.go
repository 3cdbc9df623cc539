package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        App        `mapstructure:"app"`
	Perplexity Perplexity `mapstructure:"perplexity"`
	Proxy      Proxy      `mapstructure:"proxy"`
	Digest     Digest     `mapstructure:"digest"`
	Sources    Sources    `mapstructure:"sources"`
	Auth       Auth       `mapstructure:"auth"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// Perplexity holds configuration for the summarization endpoint. BaseURL
// points at the edge proxy, not the vendor; the proxy adds the vendor key.
type Perplexity struct {
	BaseURL    string        `mapstructure:"base_url"`
	Model      string        `mapstructure:"model"`
	APIKey     string        `mapstructure:"api_key"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// Proxy holds configuration for the edge proxy server
type Proxy struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	AllowedOrigin  string        `mapstructure:"allowed_origin"`
	UpstreamURL    string        `mapstructure:"upstream_url"`
	UpstreamAPIKey string        `mapstructure:"upstream_api_key"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// Digest holds digest-generation configuration
type Digest struct {
	MaxConcurrent int    `mapstructure:"max_concurrent"`
	MaxWords      int    `mapstructure:"max_words"`
	Style         string `mapstructure:"style"`
}

// Sources holds ingestion adapter configuration
type Sources struct {
	Reddit  Reddit  `mapstructure:"reddit"`
	Twitter Twitter `mapstructure:"twitter"`
}

// Reddit holds Reddit listing fetcher configuration
type Reddit struct {
	BaseURL    string   `mapstructure:"base_url"`
	UserAgent  string   `mapstructure:"user_agent"`
	Subreddits []string `mapstructure:"subreddits"`
}

// Twitter holds Twitter bookmarks fetcher configuration
type Twitter struct {
	BaseURL string `mapstructure:"base_url"`
}

// Auth holds the authenticated identity used for API calls and record
// attribution
type Auth struct {
	AccessToken string `mapstructure:"access_token"`
	UserID      string `mapstructure:"user_id"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, and environment.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".yfetch")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	viper.SetEnvPrefix("YFETCH")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".yfetch")

	// Perplexity defaults
	viper.SetDefault("perplexity.base_url", "http://localhost:8080")
	viper.SetDefault("perplexity.model", "llama-3.1-sonar-large-128k-online")
	viper.SetDefault("perplexity.max_retries", 3)
	viper.SetDefault("perplexity.retry_delay", "2s")

	// Proxy defaults
	viper.SetDefault("proxy.host", "0.0.0.0")
	viper.SetDefault("proxy.port", 8080)
	viper.SetDefault("proxy.allowed_origin", "https://app.yfetch.com")
	viper.SetDefault("proxy.upstream_url", "https://api.perplexity.ai/chat/completions")
	viper.SetDefault("proxy.read_timeout", "30s")
	viper.SetDefault("proxy.write_timeout", "90s")

	// Digest defaults
	viper.SetDefault("digest.max_concurrent", 4)
	viper.SetDefault("digest.max_words", 200)
	viper.SetDefault("digest.style", "concise")

	// Source defaults
	viper.SetDefault("sources.reddit.base_url", "https://www.reddit.com")
	viper.SetDefault("sources.reddit.user_agent", "yfetch/1.0")
	viper.SetDefault("sources.twitter.base_url", "https://api.twitter.com")
}

// validateConfig checks cross-field constraints that viper cannot express
func validateConfig(config *Config) error {
	if config.Digest.MaxConcurrent < 1 {
		return fmt.Errorf("digest.max_concurrent must be at least 1, got %d", config.Digest.MaxConcurrent)
	}
	if config.Perplexity.MaxRetries < 1 {
		return fmt.Errorf("perplexity.max_retries must be at least 1, got %d", config.Perplexity.MaxRetries)
	}
	switch config.Digest.Style {
	case "concise", "detailed":
	default:
		return fmt.Errorf("digest.style must be concise or detailed, got %q", config.Digest.Style)
	}
	return nil
}

// Reset clears the cached global configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}
