package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"feedback-insights-go/internal/config"
	"feedback-insights-go/internal/dashboard"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/server"
	"feedback-insights-go/internal/statsapi"
)

func main() {
	cfg, err := config.Load() // loads .env and configures logging
	log := logger.New()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.WithField("service", "feedback-insights-go").
		WithField("environment", cfg.Environment).
		Info("starting service")

	client := statsapi.New(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.ExportRetries)
	ctrl := dashboard.NewController(client)
	log.WithField("stats_url", client.StatsURL()).Info("stats api configured")

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.NewRouter(ctrl, client.ExportURL()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
	log.Info("server stopped")
}
