package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/dicejourney/internal/adapters/http"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes the engine over HTTP until ctx is done, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	handler := httpAdapter.NewHandler(a.Engine,
		httpAdapter.WithMetrics(a.Metrics.Handler()),
		httpAdapter.WithLogger(a.Logger),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(a.Out, "Starting Dice Journey server on %s", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		printSystemMessage(a.Out, "Shutting down...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		printSystemMessage(a.Out, "Server stopped gracefully")
		return nil
	}
}
