package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"hotzaot/internal/amqp"
	"hotzaot/internal/cli"
	"hotzaot/internal/log"
	"hotzaot/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentWorker)

	logger.Info("Starting hotzaot-worker", log.FieldOperation, log.OpStartup)

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		repo.Close()
		os.Exit(1)
	}

	syncWorker := worker.NewSyncWorker(repo)

	// Cancellation stops the consumer loop; the clients are closed only
	// after the consumer has returned.
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeClassifications(gctx, syncWorker.HandleClassification)
	})

	logger.Info("Worker consuming classification events",
		log.FieldQueue, cfg.AMQPQueue, "exchange", cfg.AMQPExchange)

	err = g.Wait()

	if closeErr := amqpClient.Close(); closeErr != nil {
		logger.Error("AMQP close error", log.FieldError, closeErr)
	}
	if closeErr := repo.Close(); closeErr != nil {
		logger.Error("Repository close error", log.FieldError, closeErr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	<-done
	logger.Info("Worker stopped gracefully", log.FieldOperation, log.OpShutdown)
}
