package airmee

import (
	"context"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Version identifies this SDK release in the User-Agent header.
const Version = "1.0.0"

// Default API endpoints.
const (
	DefaultSandboxEndpoint    = "https://staging-api.airmee.com/integration"
	DefaultProductionEndpoint = "https://api.airmee.com/integration"
)

// Operation path segments, appended to the resolved endpoint.
const (
	pathDeliveryIntervals = "checkout_delivery_intervals_for_zip_code"
	pathProductThreshold  = "product_threshold_for_place"
	pathRequestDelivery   = "request_delivery"
)

// Operation names used in logs, spans, and metrics.
const (
	opDeliveryIntervals = "delivery_intervals"
	opProductThreshold  = "product_threshold"
	opRequestDelivery   = "request_delivery"
)

// Config holds the resolved configuration the client consumes. Loading it
// from the environment or a file is the caller's concern.
type Config struct {
	// Sandbox selects the staging API server. Use DefaultConfig to get the
	// provider's default of sandbox-on.
	Sandbox bool

	// SandboxEndpoint and ProductionEndpoint override the default base URLs
	// when non-empty.
	SandboxEndpoint    string
	ProductionEndpoint string

	// AuthToken is the bearer credential sent on every request. The client
	// does not refresh or validate it.
	AuthToken string

	// Timeout and Headers are passed through to the HTTP transport.
	Timeout time.Duration
	Headers http.Header
}

// DefaultConfig returns a Config with sandbox mode on, matching the
// provider's documented default.
func DefaultConfig() Config {
	return Config{Sandbox: true}
}

// endpoint resolves the base URL from the sandbox flag and overrides.
func (c Config) endpoint() string {
	if c.Sandbox {
		if c.SandboxEndpoint != "" {
			return c.SandboxEndpoint
		}
		return DefaultSandboxEndpoint
	}
	if c.ProductionEndpoint != "" {
		return c.ProductionEndpoint
	}
	return DefaultProductionEndpoint
}

// Metrics receives request outcomes. Implementations are optional; see
// the telemetry package for a Prometheus-backed one.
type Metrics interface {
	RecordRequest(operation, status string, duration float64)
}

// Client talks to the Airmee integration API. It is stateless: every call is
// an independent request/response cycle, and concurrent use is safe as long
// as the Transport is.
type Client struct {
	config    Config
	transport Transport
	logger    *otelzap.Logger
	tracer    trace.Tracer
	metrics   Metrics
	now       func() time.Time
}

// New creates a Client with the production HTTP transport. A nil logger is
// replaced with a nop logger; a nil tracer disables span creation.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	transport := NewHTTPTransport(HTTPTransportConfig{
		Timeout: cfg.Timeout,
		Headers: cfg.Headers,
	})
	return NewWithTransport(cfg, transport, logger, tracer)
}

// NewWithTransport creates a Client with a custom transport. This is how
// tests inject a MockTransport.
func NewWithTransport(cfg Config, transport Transport, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	return &Client{
		config:    cfg,
		transport: transport,
		logger:    logger,
		tracer:    tracer,
		now:       time.Now,
	}
}

// WithMetrics attaches a metrics recorder and returns the client.
func (c *Client) WithMetrics(m Metrics) *Client {
	c.metrics = m
	return c
}

// Sandbox reports whether the client targets the staging API server.
func (c *Client) Sandbox() bool {
	return c.config.Sandbox
}

// DeliveryIntervalsForAddress returns the delivery Schedules that could be
// offered to a customer at the given address, in the order the provider
// returned them. The result may be empty.
func (c *Client) DeliveryIntervalsForAddress(ctx context.Context, placeID string, address Address) ([]Schedule, error) {
	if placeID == "" {
		return nil, newInvalidArgument("placeId must be specified")
	}

	ctx, finish := c.startOp(ctx, opDeliveryIntervals)
	c.logger.Ctx(ctx).Info("Fetching delivery intervals",
		zap.String("place_id", placeID),
		zap.String("zip_code", address.ZipCode()),
		zap.String("country", address.CountryCode()),
	)

	resp, err := c.send(ctx, &Request{
		Method: http.MethodGet,
		URL:    c.targetURL(pathDeliveryIntervals),
		Header: c.authHeader(),
		Query:  scheduleQuery(placeID, address, c.now()),
	})
	if err != nil {
		finish(err)
		return nil, err
	}

	if resp.StatusCode >= 400 {
		mapped := mapStatusError(lookupStatusKinds, resp.StatusCode, resp.Body)
		finish(mapped)
		return nil, mapped
	}

	schedules, err := decodeSchedules(resp.Body)
	finish(err)
	if err != nil {
		return nil, err
	}

	c.logger.Ctx(ctx).Debug("Delivery intervals fetched",
		zap.String("place_id", placeID),
		zap.Int("schedule_count", len(schedules)),
	)
	return schedules, nil
}

// DeliveryIntervalsForZipCode looks up delivery Schedules using only the zip
// code and country of the given address; street and city are discarded.
//
// Deprecated: DeliveryIntervalsForAddress is preferred and forwards the
// optional address details for validation.
func (c *Client) DeliveryIntervalsForZipCode(ctx context.Context, placeID string, address Address) ([]Schedule, error) {
	zipOnly, err := NewAddress(address.ZipCode(), address.CountryCode())
	if err != nil {
		return nil, err
	}
	return c.DeliveryIntervalsForAddress(ctx, placeID, zipOnly)
}

// ProductThresholdForPlace returns the largest/heaviest Item the provider
// accepts at the given place. Callers should not request delivery of an item
// exceeding any of the returned dimensions.
func (c *Client) ProductThresholdForPlace(ctx context.Context, placeID string) (Item, error) {
	if placeID == "" {
		return Item{}, newInvalidArgument("placeId must be specified")
	}

	ctx, finish := c.startOp(ctx, opProductThreshold)
	c.logger.Ctx(ctx).Info("Fetching product threshold", zap.String("place_id", placeID))

	resp, err := c.send(ctx, &Request{
		Method: http.MethodGet,
		URL:    c.targetURL(pathProductThreshold),
		Header: c.authHeader(),
		Query:  thresholdQuery(placeID),
	})
	if err != nil {
		finish(err)
		return Item{}, err
	}

	if resp.StatusCode >= 400 {
		mapped := mapStatusError(lookupStatusKinds, resp.StatusCode, resp.Body)
		finish(mapped)
		return Item{}, mapped
	}

	item, err := decodeThreshold(resp.Body)
	finish(err)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

// RequestDelivery asks the provider to fulfil a delivery and returns the
// registered Order.
func (c *Client) RequestDelivery(ctx context.Context, placeID, ecommID string, recipient Recipient, dropoffAddress Address, items []Item, pickupInterval, dropoffInterval TimeRange) (Order, error) {
	if placeID == "" {
		return Order{}, newInvalidArgument("placeId must be specified")
	}
	if ecommID == "" {
		return Order{}, newInvalidArgument("ecommId must be specified")
	}
	if dropoffAddress.City() == "" || dropoffAddress.StreetAndNumber() == "" {
		return Order{}, newInvalidArgument("delivery address must specify city and street")
	}
	if len(items) == 0 {
		return Order{}, newInvalidArgument("items must contain at least one member")
	}

	ctx, finish := c.startOp(ctx, opRequestDelivery)
	c.logger.Ctx(ctx).Info("Requesting delivery",
		zap.String("place_id", placeID),
		zap.String("ecomm_id", ecommID),
		zap.Int("item_count", len(items)),
	)

	resp, err := c.send(ctx, &Request{
		Method: http.MethodPost,
		URL:    c.targetURL(pathRequestDelivery),
		Header: c.authHeader(),
		Body:   encodeDeliveryRequest(placeID, ecommID, recipient, dropoffAddress, items, pickupInterval, dropoffInterval),
	})
	if err != nil {
		finish(err)
		return Order{}, err
	}

	if resp.StatusCode >= 400 {
		mapped := mapStatusError(deliveryStatusKinds, resp.StatusCode, resp.Body)
		finish(mapped)
		return Order{}, mapped
	}

	order, err := decodeOrder(resp.Body)
	finish(err)
	if err != nil {
		return Order{}, err
	}

	c.logger.Ctx(ctx).Info("Delivery registered",
		zap.String("order_id", order.ID()),
		zap.String("tracking_url", order.TrackingURL()),
	)
	return order, nil
}

// send invokes the transport and wraps transport-level failures as server
// errors, keeping the cause reachable through errors.Unwrap.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		c.logger.Ctx(ctx).Error("Transport failure", zap.Error(err))
		return nil, &Error{
			Kind:       KindServerError,
			Message:    err.Error(),
			StatusCode: 500,
			Cause:      err,
		}
	}
	return resp, nil
}

func (c *Client) targetURL(path string) string {
	return c.config.endpoint() + "/" + path
}

func (c *Client) authHeader() http.Header {
	header := http.Header{}
	header.Set("Authorization", c.config.AuthToken)
	return header
}

// startOp opens a span for the operation when a tracer is configured and
// returns a finish callback that closes the span and records metrics.
func (c *Client) startOp(ctx context.Context, operation string) (context.Context, func(error)) {
	start := c.now()

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, "airmee."+operation)
	}

	return ctx, func(err error) {
		if span != nil {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}
		if c.metrics != nil {
			status := "ok"
			if err != nil {
				status = "error"
			}
			c.metrics.RecordRequest(operation, status, time.Since(start).Seconds())
		}
	}
}
