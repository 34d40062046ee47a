package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flightapp/flightbooking/config"
	"github.com/flightapp/flightbooking/internal/email"
	"github.com/flightapp/flightbooking/internal/kafka"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender()

	log.Info().Str("topic", cfg.Kafka.NotificationsTopic).Msg("notifications worker started")
	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		return sender.Send(ctx, event)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("consumer stopped")
	}
}
