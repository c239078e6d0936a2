// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/api"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/cache"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/events"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/repository/postgres"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/service"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/slotting"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/storage"
	"github.com/kocayazbey/Ayazlogistics-sub003/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Core pipeline
	scorer, err := slotting.NewScorer(cfg.Slotting.Weights)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Invalid slotting weights")
	}
	classifier := slotting.NewClassifier()
	recommender := slotting.NewRecommender(scorer, cfg.Slotting.Costs)
	simulator := slotting.NewSimulator(cfg.Slotting.Costs)

	// Ports
	productRepo := postgres.NewProductRepository(db.DB, classifier)
	locationRepo := postgres.NewLocationRepository(db.DB)
	moveTaskRepo := postgres.NewMoveTaskRepository(db)

	emitter, err := events.NewEmitter(cfg.Events, cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Event emitter unavailable, continuing without events")
		emitter = events.NewNoopEmitter()
	}

	analysisCache, err := cache.NewAnalysisCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Analysis cache unavailable, continuing without cache")
		analysisCache = cache.NewNoopAnalysisCache()
	}

	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled {
		client, err := storage.NewS3Client(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Object storage unavailable, report export disabled")
		} else {
			objectStorage = client
		}
	}

	analyzer := slotting.NewAnalyzer(productRepo, locationRepo, recommender, emitter, cfg.Slotting.Workers)
	slottingService := service.NewSlottingService(analyzer, simulator, analysisCache, emitter, moveTaskRepo, objectStorage)

	// Initialize HTTP server
	router := api.NewRouter(slottingService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exited")
}
