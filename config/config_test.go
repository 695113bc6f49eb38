package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SHOPLENS_SERVER_PORT")
		os.Unsetenv("SHOPLENS_SERVER_ENVIRONMENT")
		os.Unsetenv("SHOPLENS_SERVER_PUBLIC_URL")
		os.Unsetenv("SHOPLENS_TELEGRAM_TOKEN")
		os.Unsetenv("SHOPLENS_VISION_API_KEY")
		os.Unsetenv("SHOPLENS_VISION_BASE_URL")
		os.Unsetenv("SHOPLENS_AFFILIATE_TAG")
		os.Unsetenv("SHOPLENS_LEDGER_PATH")
		os.Unsetenv("SHOPLENS_CACHE_TTL")
		os.Unsetenv("SHOPLENS_RATELIMIT_REDIRECT_PER_MINUTE")
	}

	setRequired := func() {
		os.Setenv("SHOPLENS_TELEGRAM_TOKEN", "test-token")
		os.Setenv("SHOPLENS_VISION_API_KEY", "test-key")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Vision.BaseURL != "https://generativelanguage.googleapis.com" {
			t.Errorf("Vision.BaseURL = %s, want https://generativelanguage.googleapis.com", cfg.Vision.BaseURL)
		}
		if len(cfg.Vision.Models) != 2 || cfg.Vision.Models[0] != "gemini-1.5-flash" {
			t.Errorf("Vision.Models = %v, want flash then pro", cfg.Vision.Models)
		}
		if cfg.Vision.AttemptTimeout != 30*time.Second {
			t.Errorf("Vision.AttemptTimeout = %v, want 30s", cfg.Vision.AttemptTimeout)
		}
		if cfg.Upload.BaseURL != "https://0x0.st" {
			t.Errorf("Upload.BaseURL = %s, want https://0x0.st", cfg.Upload.BaseURL)
		}
		if cfg.Affiliate.Tag != "chop07c-20" {
			t.Errorf("Affiliate.Tag = %s, want chop07c-20", cfg.Affiliate.Tag)
		}
		if cfg.Ledger.Path != "clicks.json" {
			t.Errorf("Ledger.Path = %s, want clicks.json", cfg.Ledger.Path)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.RedirectPerMinute != 60 {
			t.Errorf("RateLimit.RedirectPerMinute = %d, want 60", cfg.RateLimit.RedirectPerMinute)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("SHOPLENS_SERVER_PORT", "9090")
		os.Setenv("SHOPLENS_SERVER_ENVIRONMENT", "production")
		os.Setenv("SHOPLENS_SERVER_PUBLIC_URL", "https://bot.example.com")
		os.Setenv("SHOPLENS_AFFILIATE_TAG", "custom-20")
		os.Setenv("SHOPLENS_LEDGER_PATH", "/data/clicks.json")
		os.Setenv("SHOPLENS_CACHE_TTL", "1h")
		os.Setenv("SHOPLENS_RATELIMIT_REDIRECT_PER_MINUTE", "120")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Server.PublicURL != "https://bot.example.com" {
			t.Errorf("Server.PublicURL = %s, want https://bot.example.com", cfg.Server.PublicURL)
		}
		if cfg.Telegram.Token != "test-token" {
			t.Errorf("Telegram.Token = %s, want test-token", cfg.Telegram.Token)
		}
		if cfg.Vision.APIKey != "test-key" {
			t.Errorf("Vision.APIKey = %s, want test-key", cfg.Vision.APIKey)
		}
		if cfg.Affiliate.Tag != "custom-20" {
			t.Errorf("Affiliate.Tag = %s, want custom-20", cfg.Affiliate.Tag)
		}
		if cfg.Ledger.Path != "/data/clicks.json" {
			t.Errorf("Ledger.Path = %s, want /data/clicks.json", cfg.Ledger.Path)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.RedirectPerMinute != 120 {
			t.Errorf("RateLimit.RedirectPerMinute = %d, want 120", cfg.RateLimit.RedirectPerMinute)
		}
	})

	t.Run("fails validation when Telegram token is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SHOPLENS_VISION_API_KEY", "test-key")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing Telegram token")
		}
	})

	t.Run("fails validation when vision API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SHOPLENS_TELEGRAM_TOKEN", "test-token")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing vision API key")
		}
	})

	t.Run("fails validation for non-positive rate limit", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("SHOPLENS_RATELIMIT_REDIRECT_PER_MINUTE", "0")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero rate limit")
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Telegram.Token = "token"
		cfg.Vision.APIKey = "key"
		cfg.Vision.Models = []string{"gemini-1.5-flash"}
		cfg.RateLimit.RedirectPerMinute = 60
		return cfg
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		if err := validate(base()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("rejects empty model list", func(t *testing.T) {
		cfg := base()
		cfg.Vision.Models = nil
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty model list")
		}
	})
}
