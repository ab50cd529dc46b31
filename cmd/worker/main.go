package main

import (
	"context"
	"errors"
	"inventory/infra/rabbitmq"
	"inventory/infra/sqldb"
	"inventory/internal/consumers"
	"inventory/pkg/aws"
	"inventory/pkg/config"
	"inventory/pkg/events"
	"inventory/pkg/logger"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	appConfig := config.Read()
	log := logger.Init(appConfig.IsProduction())
	defer log.Sync()

	zap.L().Info("Inventory Snapshot Worker starting...",
		zap.String("serviceName", appConfig.ServiceName),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for worker service")
	}
	if !appConfig.S3Enabled() {
		zap.L().Fatal("AWS_BUCKET and AWS_ENDPOINT or AWS_DEFAULT_REGION are required for worker service")
	}

	repository, err := sqldb.NewRepository(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open database", zap.Error(err))
	}
	defer repository.Close()

	if err := repository.Migrate(context.Background()); err != nil {
		zap.L().Fatal("Failed to create schema", zap.Error(err))
	}

	bucket := aws.NewS3Bucket(appConfig)
	defer bucket.Close()

	snapshotHandler := consumers.NewSnapshotHandler(repository, bucket, zap.L())

	consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, rabbitmq.ConsumerConfig{
		Exchange:      events.ItemExchange,
		QueueName:     appConfig.ServiceName + ".item.snapshot.v1", // {service}.{domain}.{purpose}.{version}
		RoutingKeys:   events.ItemRoutingKeys,
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 1, // snapshots rebuild the whole workbook; one at a time
	})
	if err != nil {
		zap.L().Fatal("Failed to create item consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		zap.L().Info("Starting item event consumer...")
		if err := consumer.Consume(ctx, snapshotHandler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
			zap.L().Error("Item consumer error", zap.Error(err))
		}
	}()

	go monitorPool(ctx, repository)

	zap.L().Info("Worker service started successfully. Waiting for events...",
		zap.String("exchange", events.ItemExchange),
	)

	<-sigChan
	zap.L().Info("Shutdown signal received, stopping worker service...")
	cancel()

	zap.L().Info("Worker service stopped gracefully")
}

func monitorPool(ctx context.Context, repository *sqldb.Repository) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := repository.GetPoolStats()
			zap.L().Info("Connection pool stats",
				zap.Int("max_open", stats["max_open_connections"].(int)),
				zap.Int("open", stats["open_connections"].(int)),
				zap.Int("in_use", stats["in_use"].(int)),
				zap.Int("idle", stats["idle"].(int)),
				zap.Int64("wait_count", stats["wait_count"].(int64)),
				zap.Int64("wait_duration_ms", stats["wait_duration_ms"].(int64)),
			)
		}
	}
}
