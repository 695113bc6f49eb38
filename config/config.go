package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Telegram  TelegramConfig
	Vision    VisionConfig
	Upload    UploadConfig
	Affiliate AffiliateConfig
	Ledger    LedgerConfig
	Prefs     PrefsConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	PublicURL      string   `mapstructure:"public_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TelegramConfig holds chat-platform configuration
type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// VisionConfig holds vision-model API configuration. Models is the
// fallback preference order: the first entry is tried first.
type VisionConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Models         []string      `mapstructure:"models"`
	Prompt         string        `mapstructure:"prompt"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

// UploadConfig holds the anonymous file-host configuration used by the
// re-upload delivery strategy.
type UploadConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// AffiliateConfig holds the affiliate tag appended to marketplace links.
type AffiliateConfig struct {
	Tag string `mapstructure:"tag"`
}

// LedgerConfig holds the click ledger file location.
type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

// PrefsConfig holds the user preferences database location.
type PrefsConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds identification cache configuration.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RedirectPerMinute int `mapstructure:"redirect_per_minute"`
}

// defaultPrompt asks for strict JSON; ProductParser still tolerates models
// that answer in prose.
const defaultPrompt = `Identify the product in this photo. Reply ONLY with strict JSON of this exact shape: {"name_en": "...", "name_ar": "...", "name_fr": "..."} using short commercial product names.`

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shoplens/")

	// Environment variable settings
	v.SetEnvPrefix("SHOPLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Secrets default to empty so the keys are known to viper and can be
	// filled from the environment; validate rejects them when still empty.
	v.SetDefault("telegram.token", "")
	v.SetDefault("vision.api_key", "")

	// Vision defaults
	v.SetDefault("vision.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("vision.models", []string{"gemini-1.5-flash", "gemini-1.5-pro"})
	v.SetDefault("vision.prompt", defaultPrompt)
	v.SetDefault("vision.attempt_timeout", "30s")

	// Upload defaults
	v.SetDefault("upload.base_url", "https://0x0.st")

	// Affiliate defaults
	v.SetDefault("affiliate.tag", "chop07c-20")

	// Storage defaults
	v.SetDefault("ledger.path", "clicks.json")
	v.SetDefault("prefs.path", "users.db")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.redirect_per_minute", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Telegram.Token == "" {
		return fmt.Errorf("Telegram token is required (set SHOPLENS_TELEGRAM_TOKEN)")
	}

	if config.Vision.APIKey == "" {
		return fmt.Errorf("vision API key is required (set SHOPLENS_VISION_API_KEY)")
	}

	if len(config.Vision.Models) == 0 {
		return fmt.Errorf("at least one vision model is required")
	}

	if config.RateLimit.RedirectPerMinute <= 0 {
		return fmt.Errorf("ratelimit.redirect_per_minute must be positive, got: %d", config.RateLimit.RedirectPerMinute)
	}

	return nil
}
