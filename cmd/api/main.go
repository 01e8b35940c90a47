package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/masspath/masspath/backend/config"
	"github.com/masspath/masspath/backend/internal/api"
	"github.com/masspath/masspath/backend/internal/database"
	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/middleware"
	"github.com/masspath/masspath/backend/internal/router"
	"github.com/masspath/masspath/backend/internal/server"
	"github.com/masspath/masspath/backend/internal/service"
)

func main() {
	// A missing .env is fine outside local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting masspath api", "env", config.GetEnvironment(), "menu_source", cfg.MenuSource)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		redisClient *redis.Client
		menuCache   service.MenuCache
		userCache   service.ProfileCache
	)
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", "error", err)
		} else {
			defer redisClient.Close()
			cache := service.NewRedisCache(redisClient)
			menuCache, userCache = cache, cache
		}
	}

	var source service.MenuSource
	switch cfg.MenuSource {
	case config.MenuSourceFoodPro:
		source = service.NewFoodProSource(cfg.FoodProURL, cfg.HTTPTimeout)
	default:
		source = service.NewHTTPMenuSource(cfg.MenuAPIURL, cfg.HTTPTimeout)
	}

	menus := service.NewMenuService(source, menuCache, cfg.Halls, cfg.MenuCacheTTL)
	profiles := service.NewProfileService(db, userCache)
	meals := service.NewMealLogService(db, userCache, profiles)
	feedback := service.NewFeedbackService(db)

	var inferrer service.IPreferenceInferrer = service.HeuristicInferrer{}
	if cfg.GeminiAPIKey != "" {
		gen, err := service.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini unavailable, using heuristic preferences", "error", err)
		} else {
			defer gen.Close()
			inferrer = service.NewLLMInferrer(gen)
		}
	}

	var presigner service.Presigner
	if cfg.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3cfg, err := config.NewS3Config(ctx, cfg)
		cancel()
		if err != nil {
			logger.Warn("s3 unavailable, meal photos disabled", "error", err)
		} else {
			presigner = s3cfg
		}
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewFeedbackRateLimiter(redisClient, cfg.FeedbackLimit, cfg.FeedbackWindow)
	}

	handler := router.SetupRouter(cfg, api.Services{
		DB:              db,
		Tokens:          service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer),
		Menus:           menus,
		Recommendations: service.NewRecommendationService(menus),
		Meals:           meals,
		Feedback:        feedback,
		Inferrer:        inferrer,
		Profiles:        profiles,
		Photos:          service.NewPhotoStore(presigner),
		FeedbackLimiter: limiter,
	})

	if err := server.New(cfg, handler).Start(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
