package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"adcheck/internal/catalog"
	"adcheck/internal/checker"
	"adcheck/internal/config"
	"adcheck/internal/domain"
	"adcheck/internal/handler"
	"adcheck/internal/llm"
	"adcheck/internal/llm/claude"
	"adcheck/internal/llm/gemini"
	"adcheck/internal/llm/openai"
	"adcheck/internal/port"
	"adcheck/internal/repository/sqlite"
	"adcheck/internal/router"
	"adcheck/internal/service"
	"adcheck/internal/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sqlite.NewDB(&cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open scene store: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	sceneRepo := sqlite.NewSceneRepo(db, domain.DefaultScenes())
	historyRepo := sqlite.NewHistoryRepo(db)

	// Initialize catalog
	cat, err := catalog.New(&cfg.Catalog)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	// Initialize LLM generator
	registerProviders()
	gen, err := buildGenerator(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize llm provider: %w", err)
	}

	// Initialize services
	store := session.NewStore()
	chk := checker.NewChecker(gen)
	sessionSvc := service.NewSessionService(store, chk, cat, sceneRepo, historyRepo, &cfg.Upload)
	sceneSvc := service.NewSceneService(sceneRepo)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc)
	sceneH := handler.NewSceneHandler(sceneSvc)
	catalogH := handler.NewCatalogHandler(cat)
	historyH := handler.NewHistoryHandler(historyRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(sessionH, sceneH, catalogH, historyH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func registerProviders() {
	llm.RegisterProvider("gemini", func(cfg *config.LLMProviderConfig) (port.Generator, error) {
		return gemini.NewClient(cfg), nil
	})
	llm.RegisterProvider("claude", func(cfg *config.LLMProviderConfig) (port.Generator, error) {
		return claude.NewClient(cfg), nil
	})
	llm.RegisterProvider("openai", func(cfg *config.LLMProviderConfig) (port.Generator, error) {
		return openai.NewClient(cfg), nil
	})
}

// buildGenerator returns the primary provider, wrapped in a fallback chain
// when a secondary provider is configured.
func buildGenerator(cfg *config.LLMConfig) (port.Generator, error) {
	primary, err := llm.NewGenerator(&cfg.Primary)
	if err != nil {
		return nil, err
	}
	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := llm.NewGenerator(secondaryCfg)
	if err != nil {
		return nil, err
	}
	return llm.NewFallbackGenerator(
		[]port.Generator{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}
