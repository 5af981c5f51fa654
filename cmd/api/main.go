// Package main is the entry point for the Synopsis API server.
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

	"github.com/roguepikachu/synopsis/internal/config"
	"github.com/roguepikachu/synopsis/internal/data"
	"github.com/roguepikachu/synopsis/internal/http/handler"
	"github.com/roguepikachu/synopsis/internal/http/router"
	"github.com/roguepikachu/synopsis/internal/metrics"
	"github.com/roguepikachu/synopsis/internal/repository"
	"github.com/roguepikachu/synopsis/internal/repository/memory"
	mongoRepo "github.com/roguepikachu/synopsis/internal/repository/mongo"
	postgresRepo "github.com/roguepikachu/synopsis/internal/repository/postgres"
	redisRepo "github.com/roguepikachu/synopsis/internal/repository/redis"
	"github.com/roguepikachu/synopsis/internal/service"
	"github.com/roguepikachu/synopsis/internal/summarizer"
	"github.com/roguepikachu/synopsis/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// backend is a snippet repository that can report its health.
type backend interface {
	repository.SnippetRepository
	handler.Pinger
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "invalid configuration: %v", err)
	}
	logger.InitLogging(cfg.LogLevel, cfg.LogFormat)

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()

	m := metrics.New()
	sum, err := newSummarizer(cfg, m)
	if err != nil {
		logger.Fatal(ctx, "failed to build summarizer: %v", err)
	}
	svc := service.NewService(sum, repository.NewStore(repo), service.WithStoreTimeout(cfg.StoreTimeout))

	engine := router.NewRouter(router.Deps{
		Snippets:     handler.NewHandler(svc),
		Health:       handler.NewHealthHandler(handler.Check{Name: cfg.StoreBackend, Pinger: repo}),
		Metrics:      m,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		MaxBodyBytes: int64(cfg.MaxBodyBytes),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(ctx, "listening on :%s (summarizer=%s, store=%s)", cfg.Port, cfg.SummarizerProvider, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info(ctx, "received %s, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "graceful shutdown failed: %v", err)
	}
	logger.Info(ctx, "server stopped")
}

// openStore connects the configured backend and prepares its schema. The
// returned func releases the connection.
func openStore(ctx context.Context, cfg config.Config) (backend, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, err := data.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		repo := mongoRepo.NewSnippetRepository(client.Database(cfg.MongoDatabase))
		if err := repo.Ping(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("ping mongo: %w", err)
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil

	case config.BackendPostgres:
		pool, err := data.NewPostgresPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		repo := postgresRepo.NewSnippetRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	case config.BackendRedis:
		client := data.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		repo := redisRepo.NewSnippetRepository(client)
		if err := repo.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return repo, func() { _ = client.Close() }, nil

	case config.BackendMemory:
		logger.Warn(ctx, "using in-memory store; snippets are lost on restart")
		return memory.NewSnippetRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// newSummarizer builds the configured provider wrapped with a per-call timeout
// and metrics.
func newSummarizer(cfg config.Config, m *metrics.Metrics) (summarizer.Summarizer, error) {
	var s summarizer.Summarizer
	switch cfg.SummarizerProvider {
	case config.ProviderOpenAI:
		s = summarizer.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, int64(cfg.SummaryMaxTokens))
	case config.ProviderAnthropic:
		s = summarizer.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel, int64(cfg.SummaryMaxTokens))
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.SummarizerProvider)
	}
	return summarizer.Instrument(summarizer.WithTimeout(s, cfg.SummaryTimeout), cfg.SummarizerProvider, m), nil
}
