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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/pos-manage/api/internal/config"
	"github.com/pos-manage/api/internal/database"
	"github.com/pos-manage/api/internal/events"
	"github.com/pos-manage/api/internal/kitchen"
	"github.com/pos-manage/api/internal/ledger"
	"github.com/pos-manage/api/internal/logger"
	"github.com/pos-manage/api/internal/router"
	"github.com/pos-manage/api/internal/service"
	"github.com/pos-manage/api/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	queries := database.New(pool)

	hub := ws.NewHub()
	go hub.Run(ctx)

	clk := clockwork.NewRealClock()
	base := service.Options{
		Aggregator: ledger.NewAggregator(cfg.LineTotalMode),
		Location:   cfg.Location,
		Clock:      clk,
		Logger:     log,
	}

	// The board only reads, so its fetcher needs no publisher.
	board := kitchen.NewBoard(service.NewDispatchService(queries, base), clk, kitchen.BoardConfig{
		Interval:    cfg.KitchenRefreshInterval,
		UrgentAfter: cfg.KitchenUrgentAfter,
		Location:    cfg.Location,
		Logger:      log,
	})

	publishers := events.Multi{hub, board}
	if cfg.AMQPURL != "" {
		amqp, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer amqp.Close()
		publishers = append(publishers, amqp)
		log.WithField("exchange", cfg.AMQPExchange).Info("publishing events to rabbitmq")
	}

	opts := base
	opts.Publisher = publishers
	orders := service.NewOrderService(pool, queries, func(db database.DBTX) service.LedgerStore {
		return database.New(db)
	}, opts)
	dispatch := service.NewDispatchService(queries, opts)

	go func() {
		if err := board.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("kitchen board stopped")
		}
	}()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(router.Deps{
			Config:   cfg,
			Users:    queries,
			Orders:   orders,
			Dispatch: dispatch,
			Board:    board,
			Hub:      hub,
			Clock:    clk,
			Logger:   log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
