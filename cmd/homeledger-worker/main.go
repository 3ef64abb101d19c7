package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"homeledger/internal/amqp"
	"homeledger/internal/config"
	"homeledger/internal/email"
	applog "homeledger/internal/log"
	"homeledger/internal/services"
	"homeledger/internal/sheets"
	gsheet "homeledger/internal/sheets/google"
	mem "homeledger/internal/sheets/memory"
	"homeledger/internal/storage"
	"homeledger/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New("worker")
	applog.SetDefault(logger)

	logger.Info("Starting homeledger worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Export target: Google Sheets when configured, in-memory otherwise so
	// local runs still drain the queue.
	var writer sheets.StatementWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = mem.New()
		logger.Info("Google Sheets disabled, using in-memory export target")
	}

	var mailer email.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(email.SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.SMTPUsername,
			Password:    cfg.SMTPPassword,
			SenderEmail: cfg.SenderEmail,
		})
		logger.Info("SMTP mailer initialized", "host", cfg.SMTPHost)
	} else {
		logger.Info("SMTP disabled, report emails will be skipped")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exports := services.NewExportProcessor(repo, writer, services.ExportProcessorConfig{
		PollInterval: cfg.ExportInterval,
		BatchSize:    cfg.ExportBatchSize,
	})
	jobWorker := worker.NewJobWorker(exports, mailer)

	g, gctx := errgroup.WithContext(ctx)

	// Queue consumer with reconnect.
	g.Go(func() error {
		return amqpClient.ConsumeWithReconnect(gctx, func(msg *amqp.JobMessage) error {
			return jobWorker.HandleMessage(gctx, msg)
		})
	})

	// Periodic sweep for statements whose message was lost.
	g.Go(func() error {
		if err := exports.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return exports.Stop(stopCtx)
	})

	logger.Info("Worker running",
		"queue", cfg.AMQPQueue,
		"export_interval", cfg.ExportInterval,
		"export_batch_size", cfg.ExportBatchSize)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
