package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/safecodph/safecod-api/internal/config"
	"github.com/safecodph/safecod-api/internal/fulfillment"
	kafkax "github.com/safecodph/safecod-api/internal/kafka"
	"github.com/safecodph/safecod-api/internal/orders"
	"github.com/safecodph/safecod-api/internal/postgres"
	"github.com/safecodph/safecod-api/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	repo := &orders.Repo{DB: db}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producer: status change notifications
	pStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
	pStatus.Start(ctx)

	svc := &fulfillment.Service{
		Store:       repo,
		Dedup:       &redisx.Dedup{RDB: rdb, Service: "fulfillment"},
		Cache:       &redisx.ViewCache{RDB: rdb},
		Events:      pStatus,
		ServiceName: cfg.ServiceName + "-fulfillment",
		StageDelay:  cfg.StageDelay,
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.FulfillmentGroup,
		orders.TopicFulfillmentRequested, cfg.FulfillmentWorkers)

	go func() {
		log.Info().
			Str("group", cfg.FulfillmentGroup).
			Str("topic", orders.TopicFulfillmentRequested).
			Int("workers", cfg.FulfillmentWorkers).
			Msg("fulfillment consumer started")
		if err := cons.Start(ctx, svc.HandleFulfillmentRequested); err != nil {
			log.Error().Err(err).Msg("consumer exit")
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Warn().Msg("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	pStatus.Close()
	pStatus.WaitClosed()
}
