package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ganto23/limitbook-engine/accounting"
	"github.com/ganto23/limitbook-engine/internal/config"
	"github.com/ganto23/limitbook-engine/internal/logging"
	"github.com/ganto23/limitbook-engine/matching"
	"github.com/ganto23/limitbook-engine/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.Dev)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	engine := matching.NewEngine(matching.WithBookChangeInterval(cfg.BookChangeInterval))
	accountant := accounting.NewAccountant()
	srv := session.NewServer(engine, accountant, cfg.BearerTokens, cfg.PnLRateLimitPerSec, log)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("limitbookd starting", zap.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server exited", zap.Error(err))
			cancel()
		}
	}()

	select {
	case sig := <-sigChan:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	log.Info("limitbookd shutdown complete")
}
