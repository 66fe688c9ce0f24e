// @title           Task List API
// @version         1.0
// @description     Task list API with due-date countdowns and statistics.
// @host            localhost:8080
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tasklist/internal/app"
	"tasklist/internal/config"

	_ "github.com/joho/godotenv/autoload"

	_ "tasklist/docs"
)

func main() {
	logger := app.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read config")
	}
	logger = app.NewLogger(logger, cfg.App.Env)
	logger.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("config loaded")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("app init failed")
	}
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info().Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown http server")
		panic(err)
	}

	if err := application.Close(ctx); err != nil {
		panic(err)
	}
	logger.Info().Msg("shut down")
}
