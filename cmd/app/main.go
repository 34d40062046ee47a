package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flightapp/flightbooking/config"
	"github.com/flightapp/flightbooking/internal/bootstrap"
	"github.com/flightapp/flightbooking/internal/cache"
	"github.com/flightapp/flightbooking/internal/kafka"
	"github.com/flightapp/flightbooking/internal/pnr"
	"github.com/flightapp/flightbooking/internal/repository"
	"github.com/flightapp/flightbooking/internal/seed"
	"github.com/flightapp/flightbooking/internal/service/reservation"
	"github.com/jackc/pgx/v5/pgxpool"
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	inventoryRepo := repository.NewInventoryRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	if err := seed.Run(ctx, pool, inventoryRepo, cfg.Booking.SeedSampleData); err != nil {
		log.Fatal().Err(err).Msg("prepare database")
	}

	searchCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SearchCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	service := reservation.NewReservationService(
		inventoryRepo,
		bookingRepo,
		searchCache,
		producer,
		pnr.NewGenerator(cfg.Booking.PNRLength),
		cfg.Kafka.BookingEventsTopic,
		time.Duration(cfg.Booking.CancelWindowHours)*time.Hour,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	log.Info().Str("addr", cfg.HTTP.Address).Msg("starting flight booking api")
	if err := bootstrap.Run(ctx, cfg, service); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
