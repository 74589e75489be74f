package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tennismate-api/core/cache"
	"tennismate-api/core/config"
	"tennismate-api/core/database"
	"tennismate-api/core/logger"
	appMiddleware "tennismate-api/core/middleware"
	"tennismate-api/core/queue"
	"tennismate-api/core/storage"
	"tennismate-api/modules/auth"
	"tennismate-api/modules/calendar"
	"tennismate-api/modules/coach"
	"tennismate-api/modules/event"
	"tennismate-api/modules/notification"
	"tennismate-api/modules/player"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run boots the HTTP API and the queue worker, blocking until a
// shutdown signal arrives.
func Run() error {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(true)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	redisCache, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()

	uploader := storage.NewUploader(cfg.S3)
	mw := appMiddleware.NewMiddleware(redisCache)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	public := api.Group("/public")
	private := api.Group("/private")

	auth.Init(public, private, db, redisCache, mw)
	notifService := notification.Init(private, db, mw, queueClient)
	event.Init(private, db, mw, notifService, queueClient)
	calendarService := calendar.Init(private, db, mw)
	player.Init(private, db, mw, uploader)
	coach.Init(private, db, mw, notifService)

	worker := queue.NewWorker(cfg.Redis, cfg.Queue)
	worker.Handle(queue.TypeCalendarSync, calendarService.HandleCalendarSyncTask)
	worker.Handle(queue.TypeCalendarDelete, calendarService.HandleCalendarDeleteTask)
	worker.Handle(queue.TypePushNotify, notifService.HandlePushNotifyTask)

	go func() {
		if err := worker.Start(); err != nil {
			logger.Error("Queue worker stopped", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
