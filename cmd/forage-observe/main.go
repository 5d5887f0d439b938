// Command forage-observe serves a foraging world over HTTP and websocket.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forage/internal/app"
	"forage/internal/observer"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	addr := flag.String("addr", "127.0.0.1:8080", "listen address")
	interval := flag.Duration("interval", 0, "autoplay period (0 waits for ADVANCE messages)")
	flag.Parse()

	logger := log.New(os.Stderr, "[forage] ", log.LstdFlags|log.Lmicroseconds)

	w, err := app.BuildWorld(cfg)
	if err != nil {
		logger.Fatalf("build world: %v", err)
	}
	srv := observer.NewServer(w, cfg.Seed, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if *interval > 0 {
		go func() {
			if err := srv.Run(ctx, *interval); err != nil && !errors.Is(err, context.Canceled) {
				logger.Printf("autoplay: %v", err)
			}
		}()
	}

	logger.Printf("serving %s on http://%s (ws at /v1/ws)", w.Name(), *addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("listen: %v", err)
	}
}
