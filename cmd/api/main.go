package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	_ "shopcore/docs"
	"shopcore/pkg/api"
	"shopcore/pkg/commerce"
	"shopcore/pkg/config"
	"shopcore/pkg/logger"
	"shopcore/pkg/otel"
	"shopcore/pkg/tasks"
)

// @title Shopcore API
// @version 0.1.0
// @description API for the shopcore commerce service
// @BasePath /
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Environment)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "shopcore",
		Host:        cfg.OTELHost,
		Probability: 1.0,
	})
	if err != nil {
		log.Error("init tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()
	tracer := tp.Tracer("shopcore")

	store := commerce.NewStore()
	repo := commerce.NewRepository(store)
	svc := commerce.NewService(repo, log)
	analytics := commerce.NewAnalytics(repo, svc)

	var sink tasks.MetricsSink
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sink = tasks.NewRedisSink(client, 0)
		log.Info("redis metrics sink enabled", "addr", cfg.RedisAddr)
	}
	runner := tasks.NewRunner(svc, analytics, sink, log)
	if err := runner.SeedExampleData(); err != nil {
		log.Error("seed example data", "error", err)
		os.Exit(1)
	}

	go func() {
		ticker := time.NewTicker(cfg.MetricsInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := runner.RecomputeMetrics(ctx); err != nil {
				log.Error("recompute metrics", "error", err)
			}
			cancel()
		}
	}()

	srv := api.NewServer(svc, analytics, log, tracer)
	log.Info("listening", "addr", cfg.HTTPAddr, "env", cfg.Environment, "currency", cfg.Currency)
	if err := http.ListenAndServe(cfg.HTTPAddr, srv.Router()); err != nil {
		log.Error("server closed", "error", err)
	}
}
