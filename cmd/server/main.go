package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/rl1809/counter-service/internal/adapter/handler"
	"github.com/rl1809/counter-service/internal/adapter/storage"
	"github.com/rl1809/counter-service/internal/config"
	"github.com/rl1809/counter-service/internal/core/service"
	applog "github.com/rl1809/counter-service/internal/log"
)

const (
	bootstrapTimeout = 30 * time.Second
	shutdownTimeout  = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The configured logger needs the config for its level, so config
		// errors fall back to the default production logger.
		zl, _ := zap.NewProduction()
		zl.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := applog.NewLogger(cfg.LogLevel)
	if err != nil {
		zl, _ := zap.NewProduction()
		zl.Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	// Bootstrap must finish before the listener binds: the repository
	// assumes the database and table exist.
	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	db, err := storage.Bootstrap(ctx, storage.Config{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	})
	cancel()
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	logger.Info("database ready", zap.String("database", cfg.DBName))

	counterService := service.NewCounterService(storage.NewMySQLAdapter(db))
	httpHandler := handler.NewHTTPHandler(counterService)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewRouter(httpHandler, logger),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// One shutdown routine for both signals.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("HTTP server stopped")

	db.Close()
	logger.Info("database connection closed")
}
