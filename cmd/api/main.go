package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"blogcms/cmd/app"
	"blogcms/internal/config"
	handlers "blogcms/internal/handler"
	"blogcms/internal/logger"
	"blogcms/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, services, err := app.App(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start")
	}
	defer func() {
		if err := db.CloseDB(); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}()

	handler := handlers.NewHandlers(services, cfg, log)

	authLimiter := middleware.NewKeyedLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, 10*time.Minute)
	router := handler.Routes(authLimiter, cfg.MinIO.Enabled)

	handlerChain := middleware.Chain(
		router,
		middleware.Recover(log),
		middleware.Logging(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     server.Addr,
			"database": cfg.DB.DbNAME,
			"driver":   cfg.DB.Driver,
		}).Info("server started")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped unexpectedly")
		}
		return
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
