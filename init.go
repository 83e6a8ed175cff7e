package main

import (
	"context"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/airmee/sdk-go/airmee"
	"github.com/airmee/sdk-go/internal/config"
	"github.com/airmee/sdk-go/internal/telemetry"
	"github.com/nyaruka/phonenumbers"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// newClient loads configuration, sets up telemetry, and builds an
// instrumented SDK client. The returned shutdown flushes telemetry.
func newClient(ctx context.Context) (*airmee.Client, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var tracer trace.Tracer
	shutdownTracer := func(context.Context) error { return nil }
	if cfg.OTELEnabled {
		tracer, shutdownTracer, err = telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
		if err != nil {
			logger.Warn("Failed to initialize tracer", zap.Error(err))
			tracer = nil
			shutdownTracer = func(context.Context) error { return nil }
		}
	}

	client := airmee.New(cfg.ClientConfig(), logger, tracer).
		WithMetrics(telemetry.NewMetrics())

	shutdown := func() {
		_ = shutdownTracer(context.Background())
		_ = logger.Sync()
	}
	return client, shutdown, nil
}

func flagAddress() (airmee.Address, error) {
	if flags.street != "" || flags.city != "" {
		return airmee.NewDetailedAddress(flags.zipCode, flags.country, flags.street, flags.city)
	}
	return airmee.NewAddress(flags.zipCode, flags.country)
}

func flagRecipient() (airmee.Recipient, error) {
	number, err := phonenumbers.Parse(flags.phone, flags.phoneRegion)
	if err != nil {
		return airmee.Recipient{}, fmt.Errorf("parsing phone number: %w", err)
	}
	return airmee.NewRecipient(flags.name, number, flags.email)
}

func flagItem() (airmee.Item, error) {
	price := money.New(flags.price, flags.currency)
	return airmee.NewItem(flags.length, flags.width, flags.height, flags.weight,
		price, flags.itemName, flags.quantity)
}
