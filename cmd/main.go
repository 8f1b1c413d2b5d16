package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/internal/router"
	"aurelialuxe.com/boutique/pkg/ai"
	"aurelialuxe.com/boutique/pkg/auth"
	"aurelialuxe.com/boutique/pkg/config"
	"aurelialuxe.com/boutique/pkg/gateway"
	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/logging"
	"aurelialuxe.com/boutique/pkg/models"
	"aurelialuxe.com/boutique/pkg/mongo"
	"aurelialuxe.com/boutique/pkg/snapshot"
	"aurelialuxe.com/boutique/pkg/store"
)

var _ router.Pinger = (*mongo.Gateway)(nil)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openSnapshotBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	cache := snapshot.New(backend, logger)
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("failed to close snapshot cache", zap.Error(err))
		}
	}()

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	admin := models.SeedAdmin(cfg.Admin.Email, hash)

	gw, closeGateway, err := openGateway(ctx, cfg, admin, logger)
	if err != nil {
		return err
	}
	defer closeGateway()

	manager := store.New(store.Options{
		Gateway: gw,
		Cache:   cache,
		Logger:  logger,
		Admin:   admin,
	})
	manager.Start(ctx)
	defer manager.Close()

	var c ai.Completer
	if cfg.AIEnabled() {
		c = ai.NewOpenAICompleter(cfg.AI.Endpoint, cfg.AI.APIKey, cfg.AI.Deployment, logger)
	} else {
		logger.Info("AI service disabled - Azure OpenAI credentials not provided")
	}

	opts := router.Options{
		Store:          manager,
		Concierge:      ai.NewConcierge(c, logger),
		StyleMatcher:   ai.NewStyleMatcher(c, logger),
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins(),
		Production:     cfg.IsProduction(),
	}
	if p, ok := gw.(router.Pinger); ok {
		opts.Database = p
	}
	engine := router.New(opts)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", zap.String("addr", srv.Addr), zap.String("backend", cfg.Backend.Kind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := global.GetDefaultTimer()
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openSnapshotBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (snapshot.Backend, error) {
	switch cfg.Snapshot.Backend {
	case "redis":
		rb := snapshot.NewRedisBackend(
			snapshot.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB),
			cfg.Snapshot.Namespace,
		)
		pingCtx, cancel := global.GetTimerFrom(ctx)
		defer cancel()
		if err := rb.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, snapshots will be retried on each write", zap.Error(err))
		}
		return rb, nil
	case "badger":
		return snapshot.NewBadgerBackend(cfg.Snapshot.BadgerDir, logger)
	default:
		return snapshot.NewMemoryBackend(), nil
	}
}

// openGateway returns nil for local-only mode
func openGateway(ctx context.Context, cfg *config.Config, admin models.User, logger *zap.Logger) (gateway.Gateway, func(), error) {
	switch cfg.Backend.Kind {
	case "mongo":
		g, err := mongo.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, logger)
		if err != nil {
			logger.Warn("remote store unavailable, running local-only", zap.Error(err))
			return nil, func() {}, nil
		}
		if err := g.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure indexes", zap.Error(err))
		}
		seedAdmin(ctx, g, admin, logger)
		return g, func() {
			closeCtx, cancel := global.GetDefaultTimer()
			defer cancel()
			if err := g.Close(closeCtx); err != nil {
				logger.Warn("failed to disconnect from MongoDB", zap.Error(err))
			}
		}, nil
	case "memory":
		mem := gateway.NewMemory()
		content := models.SeedSiteContent()
		mem.Seed(models.SeedProducts(), []models.User{admin}, &content)
		return mem, func() {}, nil
	case "local":
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend.Kind)
	}
}

// seedAdmin makes sure the curator account exists in a fresh remote store
func seedAdmin(ctx context.Context, g gateway.Gateway, admin models.User, logger *zap.Logger) {
	err := g.InsertUser(ctx, admin)
	switch {
	case err == nil:
		logger.Info("seeded curator account", zap.String("email", admin.Email))
	case errors.Is(err, gateway.ErrDuplicateEmail):
	default:
		logger.Warn("failed to seed curator account", zap.Error(err))
	}
}
