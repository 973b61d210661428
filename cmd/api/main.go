package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shorechef/backend/config"
	"github.com/shorechef/backend/internal/api"
	"github.com/shorechef/backend/internal/app"
	"github.com/shorechef/backend/internal/corpus"
	"github.com/shorechef/backend/internal/database"
	"github.com/shorechef/backend/internal/localization"
	"github.com/shorechef/backend/internal/logging"
	"github.com/shorechef/backend/internal/middleware"
	"github.com/shorechef/backend/internal/navigator"
	"github.com/shorechef/backend/internal/router"
	"github.com/shorechef/backend/internal/server"
	"github.com/shorechef/backend/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	log.WithField("environment", cfg.Environment).Info("Starting ShoreChef API")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	genaiClient, err := app.GenAI(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create completion client")
	}
	completer := app.Completer(genaiClient, cfg)

	docs, db, storeOK := app.OpenStoreOrUnavailable(cfg, app.Embedder(genaiClient, cfg, log), log)
	if storeOK {
		defer database.Close(db)
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, log)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable; running without translation cache and rate limiting")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	if storeOK {
		seed(ctx, cfg, docs, log)
	}

	translatorOpts := []localization.Option{localization.WithWorkers(cfg.TranslateWorkers)}
	deps := api.Dependencies{Log: log}
	if redisClient != nil {
		translatorOpts = append(translatorOpts, localization.WithCache(localization.NewRedisCache(redisClient, cfg.TranslationCacheTTL)))
		if cfg.ChatRateLimit > 0 {
			deps.ChatLimiter = middleware.NewChatRateLimiter(redisClient, cfg.ChatRateLimit, log)
		}
	}
	translator := localization.New(completer, log, translatorOpts...)

	deps.Recipes = service.NewRecipeService(docs, translator, log)
	deps.Chat = service.NewChatService(navigator.New(), completer, log)

	handler := router.SetupRouter(cfg.AllowedOrigins, deps)
	if err := server.New(cfg.ServerHost, cfg.ServerPort, handler, log).Run(ctx); err != nil {
		log.WithError(err).Fatal("Server error")
	}
	log.Info("Server stopped")
}

func seed(ctx context.Context, cfg *config.Config, docs corpus.Store, log logrus.FieldLogger) {
	src, err := app.CorpusSource(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Recipe corpus source is invalid; skipping seeding")
		return
	}
	if _, err := corpus.NewLoader(docs, src, log).LoadIfEmpty(ctx); err != nil {
		log.WithError(err).Error("Failed to seed recipe store")
	}
}
