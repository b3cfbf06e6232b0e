package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/safecodph/safecod-api/internal/config"
	"github.com/safecodph/safecod-api/internal/httpx"
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

	// Kafka producers, one per topic
	pCreated := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	pCreated.Start(ctx)
	pFulfill := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicFulfillmentRequested, 1024)
	pFulfill.Start(ctx)

	router := httpx.NewRouter()
	(&httpx.ProductsHandler{}).Register(router)
	oh := &httpx.OrdersHandler{
		Store:   repo,
		Created: pCreated,
		Fulfill: pFulfill,
		Cache:   &redisx.ViewCache{RDB: rdb},
		Idem:    &redisx.IdemStore{RDB: rdb},
		Service: cfg.ServiceName,
	}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("SafeCOD API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Warn().Msg("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	// close inboxes -> flush & close writers, then stop the loops
	pCreated.Close()
	pFulfill.Close()
	pCreated.WaitClosed()
	pFulfill.WaitClosed()
}
