package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"orderservice/cmd"
	httpin "orderservice/internal/adapters/in/http"
	"orderservice/internal/adapters/in/queue"
	"orderservice/internal/adapters/out/postgres"
	rabbitout "orderservice/internal/adapters/out/rabbitmq"
	"orderservice/internal/pkg/logger"
	"orderservice/internal/pkg/metrics"
	"orderservice/internal/pkg/rabbitmq"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var errConsumerStopped = errors.New("create order consumer stopped: delivery channel closed")

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err = run(configs, zapLogger); err != nil {
		zapLogger.Fatal("service stopped with error", zap.Error(err))
	}
	zapLogger.Info("service stopped gracefully")
}

func run(configs cmd.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openGorm(configs)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}
	zapLogger.Info("database connected")

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: configs.RabbitMQURL, Prefetch: configs.RabbitMQPrefetch})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			zapLogger.Warn("closing rabbitmq", zap.Error(closeErr))
		}
	}()
	if err = client.DeclareExchange(configs.OrderEventsExchange); err != nil {
		return err
	}
	zapLogger.Info("rabbitmq connected")

	publisher, err := rabbitout.NewEventPublisher(client, configs.OrderEventsExchange)
	if err != nil {
		return err
	}

	relay := postgres.NewOutboxRelay(gormDB, publisher, zapLogger)
	if sent, relayErr := relay.PublishPending(ctx, configs.OutboxRelayBatchSize); relayErr != nil {
		zapLogger.Warn("publishing pending outbox messages", zap.Error(relayErr))
	} else if sent > 0 {
		zapLogger.Info("published pending outbox messages", zap.Int("count", sent))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, zapLogger)

	consumer, err := queue.NewCreateOrderConsumer(
		configs.CreateOrderQueue,
		client,
		app.CreateCreateOrderCommandHandler(),
		zapLogger,
		metrics.NewConsumerMetrics(registry),
	)
	if err != nil {
		return err
	}

	srv := httpin.NewServer(app.HTTPHandlers(), zapLogger, metrics.NewServerMetrics(registry), registry)

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		runErr := consumer.Run(ctx)
		if runErr == nil && ctx.Err() == nil {
			runErr = errConsumerStopped
		}
		if runErr != nil {
			errCh <- runErr
		}
	}()
	go func() {
		defer wg.Done()
		if startErr := srv.Start(":" + configs.HTTPPort); startErr != nil {
			errCh <- startErr
		}
	}()

	select {
	case <-ctx.Done():
		zapLogger.Info("received shutdown signal")
	case err = <-errCh:
		zapLogger.Error("component failed", zap.Error(err))
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)
	wg.Wait()

	return errors.Join(err, shutdownErr)
}

func openGorm(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(pgdriver.Open(configs.PostgresDSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(configs.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(configs.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(configs.DBConnMaxLifetime)

	return gormDB, nil
}
