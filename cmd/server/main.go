// @title Leave Management API
// @version 1.0
// @description Leave requests, approvals and balances for organizations.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"leave-backend/bootstrap"
	"leave-backend/config"
	"leave-backend/database"
	"leave-backend/internal/repository"
	"leave-backend/internal/repository/memory"
	"leave-backend/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	cfg := config.LoadConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, client, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store failed", zap.Error(err))
	}
	if client != nil {
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Warn("mongo disconnect failed", zap.Error(err))
			}
		}()
	}

	svc := server.NewServices(cfg, store, logger)

	if cfg.BootstrapAdminEmail != "" {
		if err := svc.Users.EnsureBootstrapAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminName, cfg.BootstrapAdminOrg); err != nil {
			logger.Fatal("bootstrap admin failed", zap.Error(err))
		}
	}

	app := server.New(cfg, store, svc, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

// openStore returns the configured store. client is nil for the memory driver.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.Store, *mongo.Client, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), nil, nil
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return repository.Store{}, nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return repository.Store{}, nil, err
		}
		logger.Info("connected to mongo", zap.String("db", cfg.MongoDB))
		return repository.NewMongoStore(client, db, cfg.StoreTimeout), client, nil
	default:
		return repository.Store{}, nil, errors.New("unknown store driver " + cfg.StoreDriver)
	}
}
