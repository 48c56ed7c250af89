package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Relay reenvía eventos user.created del bus local a un stream de Redis para
// que el servicio de facturación los consuma fuera de proceso.
type Relay struct {
	client *redis.Client
	stream string
}

func NewRelay(client *redis.Client, stream string) *Relay {
	if stream == "" {
		stream = UserEventsStream
	}
	return &Relay{client: client, stream: stream}
}

// Attach suscribe el relay al bus y devuelve la función de desuscripción.
func (r *Relay) Attach(bus *Bus) func() {
	return bus.Subscribe(UserCreated, func(ctx context.Context, payload any) error {
		evt, ok := payload.(UserCreatedEvent)
		if !ok {
			return errors.New("unexpected payload for user.created")
		}
		body, err := json.Marshal(evt)
		if err != nil {
			return err
		}
		return r.client.XAdd(ctx, &redis.XAddArgs{
			Stream: r.stream,
			Values: map[string]any{"event": body},
		}).Err()
	})
}

// StreamConsumer lee user.created desde un stream de Redis con un consumer
// group y entrega cada evento al handler. Los mensajes procesados se
// confirman con XACK; los fallidos quedan pendientes para reintento.
type StreamConsumer struct {
	logger   *zap.Logger
	client   *redis.Client
	stream   string
	group    string
	consumer string
	handler  func(ctx context.Context, evt UserCreatedEvent) error
}

func NewStreamConsumer(logger *zap.Logger, client *redis.Client, stream, group, consumer string, handler func(ctx context.Context, evt UserCreatedEvent) error) *StreamConsumer {
	if stream == "" {
		stream = UserEventsStream
	}
	return &StreamConsumer{
		logger:   logger,
		client:   client,
		stream:   stream,
		group:    group,
		consumer: consumer,
		handler:  handler,
	}
}

// Run bloquea hasta que el contexto se cancele.
func (c *StreamConsumer) Run(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}

	c.logger.Info("stream consumer started",
		zap.String("stream", c.stream),
		zap.String("group", c.group),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{c.stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("stream read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				if err := c.process(ctx, msg); err != nil {
					c.logger.Warn("stream message failed",
						zap.String("id", msg.ID),
						zap.Error(err),
					)
					continue
				}
				if err := c.client.XAck(ctx, c.stream, c.group, msg.ID).Err(); err != nil {
					c.logger.Warn("stream ack failed", zap.String("id", msg.ID), zap.Error(err))
				}
			}
		}
	}
}

func (c *StreamConsumer) process(ctx context.Context, msg redis.XMessage) error {
	raw, ok := msg.Values["event"].(string)
	if !ok {
		return errors.New("invalid message format")
	}
	var evt UserCreatedEvent
	if err := json.Unmarshal([]byte(raw), &evt); err != nil {
		return err
	}
	return c.handler(ctx, evt)
}
