package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"frame-art-backend/internal/artstore"
	"frame-art-backend/internal/config"
	"frame-art-backend/internal/gemini"
	"frame-art-backend/internal/handlers"
	"frame-art-backend/internal/middleware"
	"frame-art-backend/internal/prompt"
	"frame-art-backend/internal/services"
	"frame-art-backend/internal/supabase"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set; generate and edit requests will fail until it is configured")
	}

	// Gemini client for prompt crafting and image synthesis.
	geminiClient := gemini.New(gemini.Options{
		APIKey:            cfg.GeminiAPIKey,
		BaseURL:           cfg.GeminiBaseURL,
		APIVersion:        cfg.GeminiAPIVersion,
		HTTPClient:        &http.Client{Timeout: cfg.RequestTimeout},
		Logger:            logger,
		RequestsPerSecond: cfg.GeminiRequestsPerSecond,
	})

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	store := artstore.New(storageClient, logger)
	crafter := prompt.NewCrafter(geminiClient)
	generationService := services.NewGenerationService(crafter, geminiClient, store, cfg.GeminiAPIKey != "", logger)

	generateHandler := handlers.NewGenerateHandler(generationService)
	editHandler := handlers.NewEditHandler(generationService)
	imagesHandler := handlers.NewImagesHandler(store)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(allowedOrigins()))

	router.GET("/health", handlers.HealthHandler)
	router.GET("/styles", handlers.ListStyles)

	router.POST("/generate", generateHandler.Generate)
	router.POST("/edit", editHandler.Edit)

	router.GET("/images", imagesHandler.ListImages)
	router.POST("/images", imagesHandler.SaveImage)
	router.DELETE("/images", imagesHandler.DeleteImage)

	logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func allowedOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
