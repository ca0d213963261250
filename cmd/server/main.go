package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selection-crew/selection-service/internal/cache"
	"github.com/selection-crew/selection-service/internal/config"
	"github.com/selection-crew/selection-service/internal/events"
	"github.com/selection-crew/selection-service/internal/handlers"
	"github.com/selection-crew/selection-service/internal/notify"
	"github.com/selection-crew/selection-service/internal/oracle"
	"github.com/selection-crew/selection-service/internal/services"
	"github.com/selection-crew/selection-service/internal/store"
	"github.com/selection-crew/selection-service/internal/utils"
	"github.com/selection-crew/selection-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	// Event publisher: Kafka when brokers are configured, in-process mock
	// otherwise.
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.NotificationTopic,
			Logger:       slogger,
		})
		if err != nil {
			logger.Error("Failed to create Kafka publisher", "error", err)
			os.Exit(1)
		}
		publisher = kafkaPublisher
	} else {
		logger.Warn("No Kafka brokers configured, notification events stay in process")
		publisher = events.NewMockEventPublisher(slogger)
	}
	defer publisher.Close()

	// Status cache: Redis when configured, otherwise recompute every time.
	cacheService := cache.NewNoopCache()
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	var scoringOracle oracle.VideoScoringOracle
	if cfg.OpenAIAPIKey != "" {
		scoringOracle = oracle.NewOpenAIOracle(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, slogger)
	} else {
		logger.Warn("No OpenAI API key configured, video analysis is disabled")
	}

	recordStore := store.NewMemoryStore()

	manager := services.NewServiceManager(services.Dependencies{
		Store:             recordStore,
		Cache:             cacheService,
		Oracle:            scoringOracle,
		ShortlistNotifier: notify.NewEventNotifier(publisher, events.EventShortlistNotification, slogger),
		FinalNotifier:     notify.NewEventNotifier(publisher, events.EventFinalSelectionNotification, slogger),
		Config:            cfg,
		Logger:            slogger,
		Validator:         utils.NewValidator(),
	})

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := manager.Question().EnsureTables(startCtx); err != nil {
		cancel()
		logger.Error("Failed to initialize tables", "error", err)
		os.Exit(1)
	}
	cancel()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlers.NewHandlerManager(manager, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting selection service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
