// mockcanteen is an in-memory stand-in for the canteen backend. It serves
// the full REST surface the storefront consumes and, when KAFKA_BROKERS is
// set, publishes the realtime order events a kitchen display would receive.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Amresh-01/Canteeno/internal/events"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	HTTPPort        string
	KafkaBrokers    []string
	ShutdownTimeout time.Duration
}

func loadConfig() config {
	_ = godotenv.Load(".env")

	cfg := config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ShutdownTimeout: 10 * time.Second,
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := loadConfig()

	var publisher *events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewPublisher(cfg.KafkaBrokers...)
		defer publisher.Close()
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("publishing order events to kafka")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      newServer(publisher).routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("mock canteen backend starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}
