package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is a background job that must return once ctx is done.
type Task func(ctx context.Context) error

// Run serves srv until ctx is cancelled or the listener fails, then shuts it
// down within shutdownTimeout. Background tasks share the server's lifetime.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger, tasks ...Task) error {
	errGrp, ctx := errgroup.WithContext(ctx)

	errGrp.Go(func() error {
		logger.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	errGrp.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server failed to shut down gracefully: %w", err)
		}
		return nil
	})

	for _, task := range tasks {
		errGrp.Go(func() error {
			return task(ctx)
		})
	}

	return errGrp.Wait()
}
