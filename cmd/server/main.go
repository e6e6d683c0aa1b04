package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/example/kpi-dashboard/internal/adapters"
	"github.com/example/kpi-dashboard/internal/api"
	"github.com/example/kpi-dashboard/internal/cache"
	"github.com/example/kpi-dashboard/internal/config"
	"github.com/example/kpi-dashboard/internal/orders"
	"github.com/example/kpi-dashboard/internal/refresh"
	"github.com/example/kpi-dashboard/internal/sink"
)

func main() {
	_ = godotenv.Load() // best-effort; real env wins

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store orders.Store
	if cfg.DatabaseURL != "" {
		pool, err := orders.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db", zap.Error(err))
		}
		defer pool.Close()
		store = orders.NewPostgresStore(pool)
		logger.Info("order store: postgres")
	} else {
		store = orders.NewMemoryStore()
		logger.Info("order store: memory")
	}

	sim := orders.NewSimulator(store)
	agg := orders.NewAggregator(store)

	c, err := cache.New(1<<26 /* ~64MB */, cfg.CacheTTL)
	if err != nil {
		logger.Fatal("cache", zap.Error(err))
	}
	defer c.Close()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var pub refresh.SnapshotPublisher
	if cfg.KafkaBrokers != "" {
		brokers := splitCSV(cfg.KafkaBrokers)
		ec, cancelEnsure := context.WithTimeout(ctx, 5*time.Second)
		sink.EnsureTopic(ec, brokers[0], cfg.KafkaTopic, logger)
		cancelEnsure()

		p := sink.NewPublisher(brokers, cfg.KafkaTopic, logger)
		defer p.Close()
		pub = p
		logger.Info("snapshot publisher: kafka", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	}

	loop := refresh.New(sim, agg, store, pub, cfg.RefreshInterval, cfg.OrdersPerRefresh, cfg.Retention, logger)
	go loop.Run(ctx)

	s := api.NewServer(
		adapters.NewQuoteClient(cfg, httpClient),
		adapters.NewHistoryClient(cfg, httpClient),
		adapters.NewCryptoClient(cfg, httpClient),
		adapters.NewSocialClient(cfg, httpClient),
		agg,
		sink.NewPusher(httpClient, cfg.SinkPushURL),
		c,
		logger,
		cfg.CORSOrigin,
	)

	server := &http.Server{Addr: ":" + cfg.Port, Handler: s.R}
	go func() {
		logger.Info("http listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShut()
	_ = server.Shutdown(ctxShut)
	logger.Info("shutdown complete")
}

func splitCSV(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
