package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartkitchen/inventory-api/internal/api"
	"github.com/smartkitchen/inventory-api/internal/cache"
	"github.com/smartkitchen/inventory-api/internal/config"
	"github.com/smartkitchen/inventory-api/internal/mealplan"
	"github.com/smartkitchen/inventory-api/internal/recommend"
	"github.com/smartkitchen/inventory-api/internal/repository/postgres"
	"github.com/smartkitchen/inventory-api/internal/service"
	"github.com/smartkitchen/inventory-api/internal/shopping"
	"github.com/smartkitchen/inventory-api/internal/storage"
	"github.com/smartkitchen/inventory-api/pkg/logger"
	"github.com/tmc/langchaingo/llms"
)

func main() {
	cfg := config.Load()

	logger.Setup(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up schema")
	}

	profileCache, err := cache.NewProfileCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		profileCache = cache.NewNoopProfileCache()
	}

	consumptionRepo := postgres.NewConsumptionRepository(db)
	mealPlanRepo := postgres.NewMealPlanRepository(db)

	var model llms.Model
	if cfg.AI.APIKey != "" {
		model, err = recommend.NewModel(cfg.AI)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("AI model unavailable, recommendations disabled")
			model = nil
		}
	} else {
		logger.Log.Warn().Msg("No AI API key configured, recommendations disabled")
	}

	var recommender recommend.Recommender = recommend.NoopRecommender{}
	if model != nil {
		recommender = recommend.NewAgentRecommender(model, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
	}

	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		archive, err = storage.NewMinioClient(cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Archive storage unavailable, plans will not be archived")
			archive = nil
		}
	}

	var planner *mealplan.Planner
	if model != nil {
		planner = mealplan.NewPlanner(model, mealPlanRepo, archive, 30*time.Second)
	}

	composer := shopping.NewComposer(recommender, cfg.Forecast.RecommendationLimit, cfg.AI.MaxParallel)

	services := &api.Services{
		Consumption: service.NewConsumptionService(consumptionRepo, profileCache),
		Forecast:    service.NewForecastService(consumptionRepo, profileCache),
		Shopping:    service.NewShoppingService(consumptionRepo, composer, planner, cfg.Forecast),
		Dashboard:   service.NewDashboardService(consumptionRepo, planner, cfg.Forecast),
		Recommender: recommender,
	}
	if planner != nil {
		services.MealPlan = service.NewMealPlanService(planner, recommender, cfg.AI.MaxParallel)
	}

	health := api.Health{
		StorageOK: func() bool { return db.Ping() == nil },
		AIOK:      model != nil,
	}

	router := api.NewRouter(services, health, cfg.AI.MaxParallel, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
