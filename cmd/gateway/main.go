package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/meghdad1234/fabric-microservices/internal/config"
	"github.com/meghdad1234/fabric-microservices/internal/gateway"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "gateway").Logger()

	log.Info().Msg("API gateway starting...")

	cfg := config.LoadGateway()

	gw := gateway.New(gateway.Config{
		Routes: []gateway.Route{
			{Prefix: "/users", Backend: cfg.UsersURL},
			{Prefix: "/products", Backend: cfg.ProductsURL},
			{Prefix: "/orders", Backend: cfg.OrdersURL},
		},
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      gw.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}

	log.Info().Msg("API gateway stopped")
}
