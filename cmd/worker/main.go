package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/queue"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/workerproc"
)

const defaultSQSRegion = "us-east-1"

// settings are the worker knobs read from the environment on top of config.
type settings struct {
	queueURL    string
	region      string
	concurrency int
	visibility  int
	shutdown    time.Duration
}

func loadSettings(cfg config.Config) (settings, error) {
	s := settings{
		queueURL:    strings.TrimSpace(cfg.ExportQueueURL),
		region:      cfg.AWSRegion,
		concurrency: envInt("EXPORT_WORKER_CONCURRENCY", workerproc.DefaultConcurrency),
		visibility:  envInt("EXPORT_SQS_VISIBILITY_TIMEOUT_SECONDS", workerproc.DefaultVisibilitySeconds),
		shutdown:    time.Duration(envInt("EXPORT_SHUTDOWN_TIMEOUT_SECONDS", int(workerproc.DefaultShutdownTimeout/time.Second))) * time.Second,
	}
	if s.queueURL == "" {
		return settings{}, errors.New("EXPORT_SQS_QUEUE_URL is required")
	}
	if s.region == "" {
		s.region = defaultSQSRegion
	}
	return s, nil
}

func main() {
	telemetry.SetService("worker")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Load()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	s, err := loadSettings(cfg)
	if err != nil {
		return err
	}
	sqsAPI, err := queue.NewSQSAPI(ctx, s.region, cfg.SQSEndpoint)
	if err != nil {
		return fmt.Errorf("sqs client: %w", err)
	}

	// The pool is sized to the worker's concurrency rather than the API default.
	app, err := bootstrap.Build(cfg, bootstrap.WithDBOptions(db.DefaultWorkerOptions(s.concurrency)))
	if err != nil {
		return fmt.Errorf("bootstrap build: %w", err)
	}
	defer app.Close()

	(&workerproc.Poller{
		Client:            sqsAPI,
		QueueURL:          s.queueURL,
		Processor:         app.ExportsService,
		Concurrency:       s.concurrency,
		VisibilitySeconds: s.visibility,
		ShutdownTimeout:   s.shutdown,
	}).Run(ctx)
	return nil
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
