package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hackdb/hackdb/backend/go-services/handlers"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/handler"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/repository"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/service"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/writer"
	"github.com/hackdb/hackdb/backend/go-services/internal/config"
	"github.com/hackdb/hackdb/backend/go-services/internal/database"
	"github.com/hackdb/hackdb/backend/go-services/pkg/logger"
	"github.com/hackdb/hackdb/backend/go-services/pkg/metrics"
	"github.com/hackdb/hackdb/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: mongo=%s/%s redis=%v", redactURI(cfg.MongoDB.URI), cfg.MongoDB.Database, cfg.Redis.Host != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := database.NewManager(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	// first attempt in the background; requests, writes and /ready retry on failure
	go mgr.Connect(ctx)
	repo := repository.NewMongoRepo(mgr)

	var statuses writer.StatusStore = writer.NewMemoryStatusStore(cfg.Writer.StatusTTL)
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis ping failed (%s), keeping record statuses in memory: %v", cfg.Redis.Addr(), err)
			_ = rdb.Close()
			rdb = nil
		} else {
			statuses = writer.NewRedisStatusStore(rdb, "record:status:", cfg.Writer.StatusTTL)
			logger.Infof("record statuses stored in redis %s", cfg.Redis.Addr())
		}
	}

	w := writer.New(repo, statuses, writer.Options{
		QueueSize:     cfg.Writer.QueueSize,
		Workers:       cfg.Writer.Workers,
		WriteTimeout:  cfg.Writer.Timeout,
		StatusTimeout: cfg.Writer.StatusTimeout,
	})
	// writes are bounded by their own timeout, not by the shutdown signal
	w.Start(context.Background())

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	handler.RegisterRecordRoutes(r, service.New(mgr, w, repo))
	handlers.RegisterHealth(r, mgr, w, startTime)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting record service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	w.Stop()
	if err := mgr.Disconnect(shutdownCtx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

// redactURI hides credentials before the URI is logged.
func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable uri>"
	}
	return u.Redacted()
}
