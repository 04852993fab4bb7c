package builder

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/conversation"
)

// App represents the application with all its components
type App struct {
	server     *http.Server
	db         *pgxpool.Pool
	store      conversation.Store
	sessionCfg config.SessionConfig
	logger     *zap.Logger
}

// Run starts the application and all its daemons
func (a *App) Run() error {
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go a.runSessionJanitor(janitorCtx)

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

// runSessionJanitor deletes sessions idle past the retention window.
func (a *App) runSessionJanitor(ctx context.Context) {
	if a.sessionCfg.CleanupInterval <= 0 {
		return
	}

	ticker := time.NewTicker(a.sessionCfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.store.CleanupOldSessions(ctx, a.sessionCfg.MaxAge)
			if err != nil {
				a.logger.Error("session cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				a.logger.Info("old sessions removed", zap.Int("count", removed))
			}
		}
	}
}

// shutdown gracefully shuts down the application
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	if a.db != nil {
		a.logger.Info("Closing database connections")
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
