package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/vitrina/pkg/app"
	"github.com/ghuser/vitrina/pkg/cache"
	"github.com/ghuser/vitrina/pkg/config"
	"github.com/ghuser/vitrina/pkg/database"
	"github.com/ghuser/vitrina/pkg/events"
	"github.com/ghuser/vitrina/pkg/logger"
	"github.com/ghuser/vitrina/pkg/telemetry"
	catalogEvents "github.com/ghuser/vitrina/services/catalog/domain/events"
	quoteEvents "github.com/ghuser/vitrina/services/quote/domain/events"
	salesEvents "github.com/ghuser/vitrina/services/sales/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	productCache := cache.NewProductCache(a.Redis, a.Config.ProductCacheTTL)

	subs := []struct {
		topic   string
		handler func(context.Context, *message.Message) error
	}{
		{salesEvents.TopicSaleRecorded, handleSaleRecorded(a, productCache)},
		{catalogEvents.TopicProductChanged, handleProductChanged(a, productCache)},
		{quoteEvents.TopicQuoteCreated, handleQuoteCreated(a)},
	}

	topics := make([]string, 0, len(subs))
	for _, sub := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, sub.topic, sub.handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", sub.topic, err)
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(sub.topic)
		topics = append(topics, sub.topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// productInvalidator is the part of *cache.ProductCache the handlers need.
type productInvalidator interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// handleSaleRecorded drops the sold product's cached read model so the
// storefront stops showing the pre-sale stock.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
func handleSaleRecorded(a *app.Application, products productInvalidator) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt salesEvents.SaleRecordedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if err := products.Delete(ctx, evt.ProductID); err != nil {
			return fmt.Errorf("invalidate product %s: %w", evt.ProductID, err)
		}
		a.Logger.InfoContext(ctx, "product cache invalidated after sale",
			"sale_id", evt.SaleID, "product_id", evt.ProductID, "business_id", evt.TenantID)
		return nil
	}
}

// handleProductChanged drops the cached read model of a written product.
// The API already invalidates synchronously; this covers writes whose
// request-path invalidation failed.
func handleProductChanged(a *app.Application, products productInvalidator) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt catalogEvents.ProductChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if err := products.Delete(ctx, evt.ProductID); err != nil {
			return fmt.Errorf("invalidate product %s: %w", evt.ProductID, err)
		}
		a.Logger.InfoContext(ctx, "product cache invalidated",
			"product_id", evt.ProductID, "change", evt.Change)
		return nil
	}
}

// handleQuoteCreated records new quote requests for the business's admins.
func handleQuoteCreated(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt quoteEvents.QuoteCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "new quote request",
			"quote_id", evt.QuoteID,
			"business_id", evt.BusinessID,
			"product_id", evt.ProductID,
			"quantity", evt.Quantity,
		)
		return nil
	}
}
