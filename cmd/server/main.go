package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-event-hub/config"
	"go-gin-event-hub/internal/cache"
	"go-gin-event-hub/internal/database"
	"go-gin-event-hub/internal/handler"
	"go-gin-event-hub/internal/notify"
	"go-gin-event-hub/internal/publisher"
	"go-gin-event-hub/internal/queue"
	"go-gin-event-hub/internal/repository"
	"go-gin-event-hub/internal/service"
	"go-gin-event-hub/internal/upload"
	"go-gin-event-hub/internal/worker"
	"go-gin-event-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.Server.LogLevel)
	defer logger.L.Sync()

	log := logger.WithComponent("main")
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 資料庫延遲連線；每個新的 pool 都會先套用 schema。啟動時連不上只記錄，第一個請求會再連線
	db := database.NewConnector(&cfg.Database)
	defer db.Close()
	if _, err := db.Pool(ctx); err != nil {
		log.Warn("database unavailable at startup", zap.Error(err))
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, running without cache and stream queue", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	eventCache := newEventCache(rdb, cfg.Cache)
	bookingQueue := newBookingQueue(ctx, rdb)
	eventPublisher := newPublisher(cfg.RabbitMQ)
	defer eventPublisher.Close()

	mailer, err := notify.NewMailer(cfg.Mailer)
	if err != nil {
		log.Fatal("failed to initialize mailer", zap.Error(err))
	}
	notifier := notify.NewEmailNotifier(mailer, notify.NewTemplateRenderer(), cfg.Server.BaseURL)

	bookingWorker := worker.NewBookingWorker(notifier, bookingQueue)
	if err := bookingWorker.Start(ctx); err != nil {
		log.Fatal("failed to start booking worker", zap.Error(err))
	}

	imageService := upload.NewImageService(newUploader(cfg.Upload), cfg.Upload.Folder)

	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	eventService := service.NewEventService(eventRepo, eventCache, eventPublisher)
	bookingService := service.NewBookingService(bookingRepo, eventRepo, bookingQueue, eventPublisher)

	handler.RegisterValidators()
	router := gin.New()
	router.Use(handler.RequestLogger(), handler.Recovery())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	handler.NewEventHandler(eventService, imageService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	select {
	case <-bookingWorker.Done():
	case <-shutdownCtx.Done():
		log.Warn("booking worker did not stop in time")
	}
}

func newEventCache(rdb *redis.Client, cfg config.CacheConfig) cache.EventCache {
	if rdb == nil {
		return cache.NoopEventCache{}
	}
	return cache.NewRedisEventCache(rdb, cfg.EventTTL)
}

// newBookingQueue Redis 可用時用 Stream（跨實例、可重試），否則退回程序內佇列
func newBookingQueue(ctx context.Context, rdb *redis.Client) queue.BookingQueue {
	if rdb != nil {
		q, err := queue.NewRedisStreamBookingQueue(ctx, rdb, "", nil)
		if err == nil {
			return q
		}
		logger.WithComponent("main").Warn("redis stream queue unavailable, using in-memory queue", zap.Error(err))
	}
	return queue.NewBookingQueue(256)
}

func newPublisher(cfg config.RabbitMQConfig) publisher.EventPublisher {
	if cfg.URL == "" {
		return publisher.NewNoopPublisher()
	}
	pub, err := publisher.NewRabbitMQPublisher(cfg.URL)
	if err != nil {
		logger.WithComponent("main").Warn("rabbitmq unavailable, integration events disabled", zap.Error(err))
		return publisher.NewNoopPublisher()
	}
	return pub
}

func newUploader(cfg config.UploadConfig) upload.Uploader {
	if cfg.CloudinaryURL == "" {
		logger.WithComponent("main").Warn("CLOUDINARY_URL not set, image uploads disabled")
		return upload.DisabledUploader{}
	}
	u, err := upload.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		logger.WithComponent("main").Warn("cloudinary misconfigured, image uploads disabled", zap.Error(err))
		return upload.DisabledUploader{}
	}
	return u
}
