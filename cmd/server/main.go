// HTTP сервер сайта: /api/daily, /api/status
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/glkeru/loyalty/daily/internal/api"
	config "github.com/glkeru/loyalty/daily/internal/config"
	db "github.com/glkeru/loyalty/daily/internal/db"
	kafka "github.com/glkeru/loyalty/daily/internal/external/kafka"
	rabbitmq "github.com/glkeru/loyalty/daily/internal/external/rabbitmq"
	interf "github.com/glkeru/loyalty/daily/internal/interfaces"
	jobs "github.com/glkeru/loyalty/daily/internal/jobs"
	limiter "github.com/glkeru/loyalty/daily/internal/limiter"
	models "github.com/glkeru/loyalty/daily/internal/models"
	services "github.com/glkeru/loyalty/daily/internal/services"
	tracing "github.com/glkeru/loyalty/daily/observability/otel"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	// config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// log
	var logger *zap.Logger
	if cfg.Production() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// tracing
	if cfg.OtelEndpoint != "" {
		shutdown, err := tracing.InitTracer(ctx, cfg.OtelEndpoint, "daily", logger)
		if err != nil {
			logger.Error("tracer init error", zap.Error(err))
		} else {
			defer shutdown()
		}
	}

	// database
	var storage interf.UserStore
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("in-memory store, data is lost on restart")
		storage = db.NewMemoryDB()
	default:
		mongodb, err := db.NewUserDB(ctx, cfg.MongoURL(), cfg.MongoDB, cfg.MongoPool)
		if err != nil {
			logger.Fatal("mongo connect error", zap.Error(err))
		}
		defer mongodb.Close(context.Background())
		storage = mongodb
	}

	// cache
	var cache interf.StatusCache
	if cfg.RedisAddr != "" {
		redis, err := db.NewCacheService(ctx, cfg.RedisAddr, cfg.RedisUser, cfg.RedisPassword, cfg.StatusCacheTTL)
		if err != nil {
			logger.Error("redis connect error, using local status cache", zap.Error(err))
		} else {
			defer redis.Close()
			cache = redis
		}
	}

	// events
	var publishers services.MultiPublisher
	if len(cfg.KafkaBrokers) > 0 {
		writer, err := kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Error("kafka writer error", zap.Error(err))
		} else {
			defer writer.Close()
			publishers = append(publishers, writer)
		}
	}
	if cfg.RabbitURL != "" {
		rabbit, err := rabbitmq.NewRabbitPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			logger.Error("rabbitmq connect error", zap.Error(err))
		} else {
			defer rabbit.Close()
			publishers = append(publishers, rabbit)
		}
	}
	var publisher interf.ClaimPublisher
	if len(publishers) > 0 {
		publisher = publishers
	}

	// services
	policy := models.ClaimPolicy{Reward: cfg.DailyRate, Cooldown: cfg.Cooldown}
	claims := services.NewClaimService(logger, storage, cache, publisher, policy, cfg.StoreTimeout)
	status := services.NewStatusService(logger, storage, cache, services.StatusOptions{
		CacheTTL:        cfg.StatusCacheTTL,
		HeartbeatWindow: cfg.HeartbeatWindow,
		LeaderboardSize: cfg.LeaderboardSize,
		Timeout:         cfg.StoreTimeout,
	})

	// rate limits
	claimLimit, err := limiter.New(limiter.Rule{
		MinInterval: cfg.ClaimMinInterval,
		Limit:       cfg.ClaimLimit,
		Window:      cfg.LimitWindow,
	}, cfg.LimitCapacity)
	if err != nil {
		logger.Fatal("limiter error", zap.Error(err))
	}
	statusLimit, err := limiter.New(limiter.Rule{
		Limit:  cfg.StatusLimit,
		Window: cfg.LimitWindow,
	}, cfg.LimitCapacity)
	if err != nil {
		logger.Fatal("limiter error", zap.Error(err))
	}

	// jobs
	scheduler := jobs.NewScheduler(logger, status, cfg.StoreTimeout, claimLimit, statusLimit)
	err = scheduler.Start("@every 1m", "@every "+cfg.StatusCacheTTL.String())
	if err != nil {
		logger.Fatal("scheduler error", zap.Error(err))
	}
	defer scheduler.Stop()

	// api handlers
	var handler http.Handler = api.NewHandler(claims, status, storage, claimLimit, statusLimit, logger)
	if cfg.OtelEndpoint != "" {
		handler = otelhttp.NewHandler(handler, "daily")
	}
	srv := &http.Server{
		Handler:      handler,
		Addr:         ":" + cfg.Port,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.Port), zap.String("store", cfg.Store))

	// shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = srv.Shutdown(timeout)
	if err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
