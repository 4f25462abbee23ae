// cmd/api/main.go
// Main entry point for the recommendation service
// Bootstraps all components and starts the HTTP server

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/campuslab/fyphub-backend/internal/auth"
	"github.com/campuslab/fyphub-backend/internal/catalog"
	"github.com/campuslab/fyphub-backend/internal/common/database"
	"github.com/campuslab/fyphub-backend/internal/common/utils"
	"github.com/campuslab/fyphub-backend/internal/config"
	"github.com/campuslab/fyphub-backend/internal/recommend"
)

func main() {
	// No .env file is fine; environment variables still apply
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("configuration validation failed", zap.Error(err))
	}

	logger.Info("starting fyphub recommendation service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port))

	// Storage: Postgres when configured, in-memory otherwise
	var catalogRepo catalog.Repository
	var interactionRepo recommend.Repository

	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
		}
		defer db.Close()

		catalogRepo = catalog.NewPostgresRepository(db)
		interactionRepo = recommend.NewPostgresRepository(db)
		logger.Info("connected to PostgreSQL")
	} else {
		memoryCatalog := catalog.NewMemoryRepository(nil)
		memoryStore := recommend.NewMemoryStore()

		if cfg.SeedDemoData {
			memoryCatalog = catalog.NewMemoryRepository(catalog.SeedProjects())
			for _, interaction := range recommend.SeedInteractions() {
				memoryStore.Append(context.Background(), interaction)
			}
			logger.Info("seeded in-memory stores with demo data")
		}

		catalogRepo = memoryCatalog
		interactionRepo = memoryStore
		logger.Warn("no DATABASE_URL configured, using in-memory stores")
	}

	// Redis is optional; without it the similarity table is recomputed
	// per request
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, similarity caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info("connected to Redis")
		}
	}

	// Recommendation engine
	collaborative := recommend.NewCollaborativeFilter()
	content := recommend.NewContentFilter()
	scorer := recommend.NewPopularityScorer()

	var tables recommend.TableSource = recommend.NewComputeTableSource(collaborative, cfg.SimilarityTimeout)
	if redisClient != nil {
		tables = recommend.NewCachedTableSource(
			redisClient,
			tables,
			cfg.SimilarityCacheTTL,
			catalogRepo.Version,
			interactionRepo.Version,
			logger,
		)
	}

	combiner := recommend.NewCombiner(collaborative, content, scorer, tables, logger, recommend.CombinerConfig{
		MinInteractionsForCF: cfg.MinInteractionsForCF,
		DiversityFactor:      cfg.DiversityFactor,
	})

	service := recommend.NewService(
		interactionRepo, catalogRepo,
		combiner, collaborative, content, scorer, tables,
		logger,
	)

	handler := recommend.NewHandler(service, logger, cfg.DefaultRecommendations, cfg.MaxRecommendations)
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)

	// Router
	router := mux.NewRouter()
	recommend.RegisterRoutes(router, handler, authMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background maintenance
	if cfg.EnableScheduler {
		scheduler := recommend.NewScheduler(service, logger, cfg.CacheWarmInterval, cfg.AnalyticsLogHour, cfg.AnalyticsLogMinute)
		scheduler.Start(ctx)
		logger.Info("scheduler started",
			zap.Duration("cache_warm_interval", cfg.CacheWarmInterval))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
