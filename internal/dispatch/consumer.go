package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/adapter"
	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/logger"
)

// Config holds the configuration for the dispatch event consumer
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

// Consumer feeds the hub from the durable event stream. Each service
// instance runs its own durable consumer so every instance sees the
// full stream.
type Consumer struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	hub    *Hub
	json   adapter.JSON
	config Config
}

// NewConsumer connects to the event bus and creates a dispatch consumer
func NewConsumer(cfg Config, natsJS adapter.NatsJetStream, hub *Hub, jsonAdapter adapter.JSON) (*Consumer, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &Consumer{
		nc:     nc,
		js:     js,
		hub:    hub,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// durableName derives a per-instance durable consumer name so the
// stream is not partitioned across dispatch nodes.
func (c *Consumer) durableName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}
	host = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, host)
	return fmt.Sprintf("%s-%s", c.config.ConsumerName, host)
}

// Run consumes the event stream until the context is canceled,
// recreating the consumer with exponential backoff after failures.
func (c *Consumer) Run(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 0

	operation := func() error {
		err := c.consume(ctx)
		if err != nil && errors.Is(err, context.Canceled) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

func (c *Consumer) consume(ctx context.Context) error {
	durable := c.durableName()
	logger.InfoCtx(ctx, "Starting dispatch consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("consumer", durable))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       durable,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWaitTimeout,
		MaxDeliver:    c.config.MaxDeliver,
		FilterSubject: "events.marketboard.>",
	}

	consumer, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down dispatch consumer")
			return ctx.Err()
		case msg := <-msgChan:
			c.handleMessage(ctx, msg)
		}
	}
}

// handleMessage relays one event to the hub. Broadcast failures do not
// exist; a dead client is the websocket layer's teardown, never a
// redelivery reason.
func (c *Consumer) handleMessage(ctx context.Context, msg adapter.Message) {
	var event domain.UploadEvent
	if err := c.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal upload event"))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	if !event.Valid() {
		logger.WarnCtx(ctx, "Dropping invalid upload event", zap.String("event", string(event.Kind)))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	c.hub.Broadcast(&event, msg.Data())

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the NATS connection
func (c *Consumer) Close() {
	if c.nc == nil {
		return
	}

	c.nc.Close()
}
