package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// EventHandler processes a decoded booking event. A returned error stops the
// consume loop; malformed payloads never reach the handler.
type EventHandler func(ctx context.Context, event BookingEvent) error

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader messageReader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads booking events until ctx is cancelled or the handler fails.
// Messages that do not decode as a BookingEvent are logged and skipped so one
// bad payload cannot wedge the group on the same offset.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var event BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn().Err(err).
				Str("topic", msg.Topic).
				Int64("offset", msg.Offset).
				Msg("skipping undecodable booking event")
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}
