// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/expiry"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/logger"
)

// shutdownTimeout bounds how long in-flight checks may finish after a
// shutdown signal.
const shutdownTimeout = 10 * time.Second

// Run builds a checker from cfg and serves the API on cfg.Server.Listen
// until ctx is cancelled, then drains in-flight requests before returning.
func Run(ctx context.Context, cfg *config.Config, version string, log logger.Logger) error {
	fetcher := expiry.New()
	fetcher.Timeout = time.Duration(cfg.Defaults.Timeout) * time.Second
	fetcher.Concurrency = cfg.Defaults.Concurrency

	srv := New(fetcher, log)
	srv.StaticDir = cfg.Server.StaticDir
	srv.Version = version

	httpServer := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Server.Listen)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Println("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
