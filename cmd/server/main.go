package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shoplens/backend/config"
	httpDelivery "github.com/shoplens/backend/internal/delivery/http"
	"github.com/shoplens/backend/internal/infrastructure/cache"
	"github.com/shoplens/backend/internal/infrastructure/imaging"
	"github.com/shoplens/backend/internal/infrastructure/ledger"
	"github.com/shoplens/backend/internal/infrastructure/prefs"
	"github.com/shoplens/backend/internal/infrastructure/telegram"
	"github.com/shoplens/backend/internal/infrastructure/upload"
	"github.com/shoplens/backend/internal/infrastructure/vision"
	"github.com/shoplens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Public URL: %s", cfg.Server.PublicURL)

	// Initialize infrastructure dependencies
	clickStore, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		log.Fatalf("Failed to open click ledger: %v", err)
	}
	log.Printf("Click ledger: %s", cfg.Ledger.Path)

	prefsStore, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		log.Fatalf("Failed to open preferences store: %v", err)
	}
	log.Printf("Preferences store: %s", cfg.Prefs.Path)

	visionClient := vision.NewClient(cfg.Vision.APIKey, cfg.Vision.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		visionClient.SetDebug(true)
		log.Printf("Vision client debug mode enabled")
	}
	log.Printf("Vision API configured: %s (models: %v)", cfg.Vision.BaseURL, cfg.Vision.Models)

	uploader := upload.NewClient(cfg.Upload.BaseURL)
	identCache := cache.NewMemoryCache(cfg.Cache.TTL)

	bot, err := telegram.New(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}
	log.Printf("Telegram bot connected: @%s", bot.Username())

	// Initialize usecase layer
	identifier := usecase.NewIdentifyService(
		visionClient,
		uploader,
		identCache,
		usecase.IdentifyConfig{
			Models:         cfg.Vision.Models,
			Prompt:         cfg.Vision.Prompt,
			AttemptTimeout: cfg.Vision.AttemptTimeout,
		},
	)

	links := usecase.NewLinkBuilder(cfg.Server.PublicURL, cfg.Affiliate.Tag)

	compress := func(data []byte) ([]byte, error) {
		return imaging.Compress(data, imaging.DefaultMaxBytes)
	}
	botService := usecase.NewBotService(bot, prefsStore, identifier, links, compress)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(botService, links, clickStore)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
