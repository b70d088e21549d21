package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/efritz/deepcache"
	zaplog "github.com/efritz/deepcache/log/zap"
	deepprom "github.com/efritz/deepcache/prometheus"
)

const metricsNamespace = "deepcache"

func main() {
	opts, err := loadOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(opts.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(opts, logger); err != nil {
		logger.Error("Probe failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(opts *options, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	hooks, err := deepprom.New(registry, metricsNamespace)
	if err != nil {
		return err
	}

	client := deepcache.NewClientFromConfig(
		opts.Cache,
		deepcache.WithLogger(zaplog.New(logger)),
		deepcache.WithHooks(hooks),
	)
	defer client.Close()

	if err := deepprom.RegisterPoolStats(registry, metricsNamespace, client); err != nil {
		return err
	}

	if opts.MetricsAddr != "" {
		server := &http.Server{
			Addr:    opts.MetricsAddr,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("Metrics server stopped", zap.Error(err))
			}
		}()

		defer server.Close()
	}

	logger.Info("Waiting for backend", zap.String("addr", opts.Cache.Addr()), zap.Int("database", opts.Cache.Database))

	readyCtx, cancel := context.WithTimeout(ctx, opts.ReadyTimeout)
	defer cancel()

	if err := client.WaitReady(readyCtx, deepcache.NewReadyBackoff()); err != nil {
		return fmt.Errorf("backend not ready: %w", err)
	}

	logger.Info("Backend is ready")

	for _, key := range opts.TTLKeys {
		ttl, err := client.TTL(key)
		logger.Info("TTL", zap.String("key", key), zap.String("ttl", describeTTL(ttl)), zap.Error(err))
	}

	if opts.Interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		stats := client.Stats()
		if client.ProbablyDead() {
			logger.Warn("Backend probably dead", zap.Int("live", stats.Live), zap.Int("idle", stats.Idle))
		} else {
			logger.Debug("Backend alive", zap.Int("live", stats.Live), zap.Int("idle", stats.Idle))
		}
	}
}

func newLogger(env string) (*zap.Logger, error) {
	var config zap.Config

	if env == "prod" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	return config.Build()
}

func describeTTL(ttl int64) string {
	switch ttl {
	case deepcache.TTLNoExpiry:
		return "no expiry"
	case deepcache.TTLNoKey:
		return "missing"
	case deepcache.TTLError:
		return "error"
	default:
		return (time.Duration(ttl) * time.Second).String()
	}
}
