package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/studypath-backend/internal/cache"
	"github.com/yungbote/studypath-backend/internal/catalog"
	"github.com/yungbote/studypath-backend/internal/handlers"
	"github.com/yungbote/studypath-backend/internal/logger"
	"github.com/yungbote/studypath-backend/internal/middleware"
	"github.com/yungbote/studypath-backend/internal/observability"
	"github.com/yungbote/studypath-backend/internal/server"
	"github.com/yungbote/studypath-backend/internal/services"
	"github.com/yungbote/studypath-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing (no-op unless OTEL_ENABLED)
	if shutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "studypath-backend",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
	}); shutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	// Catalog
	log.Info("Loading subject catalog from main...")
	catalogPath := utils.GetEnv("CATALOG_PATH", "configs/subjects.yaml", log)
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		log.Error("Could not load subject catalog", "path", catalogPath, "error", err)
		os.Exit(1)
	}

	// Cache store
	log.Info("Setting up cache store from main...")
	cacheTTL := utils.GetEnvAsDuration("CACHE_TTL_SECONDS", time.Hour, log)
	var store cache.Store
	switch utils.GetEnv("CACHE_BACKEND", "memory", log) {
	case "redis":
		redisStore, err := cache.NewRedisStore(log)
		if err != nil {
			log.Error("Could not init Redis cache store", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
	default:
		memStore := cache.NewMemoryStore()
		memStore.StartSweeper(ctx, 10*time.Minute)
		store = memStore
	}

	// Services
	log.Info("Setting up services from main...")
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	videoSearch, err := services.NewYouTubeSearchService(log)
	if err != nil {
		log.Error("Could not init YouTubeSearchService", "error", err)
		os.Exit(1)
	}
	resolver, err := services.NewContentResolver(log, store, openaiClient, videoSearch, services.ResolverConfig{
		CacheTTL:        cacheTTL,
		MaxHistoryTurns: utils.GetEnvAsInt("MAX_HISTORY_TURNS", 20, log),
	})
	if err != nil {
		log.Error("Could not init ContentResolver", "error", err)
		os.Exit(1)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	catalogHandler := handlers.NewCatalogHandler(cat)
	contentHandler := handlers.NewContentHandler(log, cat, resolver)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CatalogHandler: catalogHandler,
		ContentHandler: contentHandler,
		RequestLogger:  middleware.NewRequestLogger(log),
		AllowOrigins:   utils.GetEnv("CORS_ALLOW_ORIGINS", "", log),
		ServiceName:    "studypath-backend",
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
