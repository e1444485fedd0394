package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"huerto/api"
	"huerto/config"
	"huerto/pkg/logger"
)

// App is the assembled application.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then
// drains in-flight requests within the configured shutdown timeout and
// closes the database.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.String("health", "/api/v1/health"))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Error("database close failed", zap.Error(err))
			}
		}
	}

	_ = logger.Sync()
	logger.Info("server stopped")
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() *gin.Engine {
	return a.router.GetEngine()
}
