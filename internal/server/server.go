// Package server runs the gallery HTTP server until its context is cancelled.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Run serves handler on ln until ctx is cancelled, then stops accepting
// connections and waits up to grace for in-flight requests before closing
// whatever is left.
func Run(ctx context.Context, ln net.Listener, handler http.Handler, grace time.Duration) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Gallery available", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...", "grace", grace)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Graceful shutdown incomplete, closing connections", "err", err)
			if cerr := server.Close(); cerr != nil {
				slog.Error("Server close failed", "err", cerr)
			}
		}
		// wait for Serve to return
		if err := <-serverErr; err != nil {
			return err
		}
		slog.Info("Server stopped")
		return nil
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}
		return err
	}
}

// ListenAndRun binds addr and calls Run. Bind failures are returned before
// anything is served.
func ListenAndRun(ctx context.Context, addr string, handler http.Handler, grace time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Run(ctx, ln, handler, grace)
}
