// File: shiffy/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiffy/config"
	"shiffy/cron"
	"shiffy/database"
	preferenceRepo "shiffy/database/repository/preference"
	scheduleRepo "shiffy/database/repository/schedule"
	"shiffy/handlers"
	"shiffy/middleware"
	"shiffy/routes"
	ai "shiffy/services/intelligence"
	"shiffy/services/notification"
	"shiffy/services/schedule"
	"shiffy/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitCache()
	utils.InitQueue()
	utils.FirebaseInit()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	window, err := config.AppConfig.WindowConfig()
	if err != nil {
		logger.Fatal("main: invalid week window config", zap.Error(err))
	}
	loc := config.AppConfig.Location()

	// repositories.
	schedules := scheduleRepo.NewMongoScheduleRepo()
	preferences := preferenceRepo.NewMongoPreferenceRepo()
	indexCtx, cancelIdx := context.WithTimeout(rootCtx, 30*time.Second)
	if err := schedules.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("main: failed to create schedule indexes", zap.Error(err))
	}
	if err := preferences.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("main: failed to create preference indexes", zap.Error(err))
	}
	cancelIdx()

	// schedule generator; without an API key generation is reported as unavailable.
	var generator ai.ScheduleGenerator
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel, logger)
		if err != nil {
			logger.Fatal("main: failed to initialize Gemini client", zap.Error(err))
		}
		defer gemini.Close()
		generator = gemini
	} else {
		logger.Warn("main: GEMINI_API_KEY not set, schedule generation disabled")
	}

	var sender notification.Sender
	if utils.FCMClient != nil {
		sender = utils.FCMClient
	}
	notifier := notification.NewDefaultNotificationService(sender, logger)

	queue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queue.Close()

	// services.
	scheduleService := &schedule.DefaultScheduleService{
		Schedules:   schedules,
		Preferences: preferences,
		Cache:       schedule.NewRedisScheduleCache(utils.GetCacheClient(), config.AppConfig.ScheduleCacheTTL()),
		Generator:   generator,
		Notifier:    notifier,
		Queue:       queue,
		StartsOn:    window.WeekStartsOn,
		Logger:      logger,
	}

	// background jobs.
	worker := cron.InitGenerationWorker(scheduleService, logger)
	generationCron, err := cron.NewGenerationScheduler(config.AppConfig.GenerationCron, scheduleService, loc, logger)
	if err != nil {
		logger.Fatal("main: failed to schedule generation cron", zap.Error(err))
	}
	generationCron.Start()
	utils.StartHealthMonitor(rootCtx, []*redis.Client{utils.GetCacheClient(), utils.GetQueueClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxyList()); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLoggerMiddleware(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewWeekHandler(window, loc),
		handlers.NewScheduleHandler(scheduleService, window, loc),
		handlers.NewPreferenceHandler(scheduleService),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	select {
	case <-generationCron.Stop().Done():
	case <-ctx.Done():
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: MongoDB disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
