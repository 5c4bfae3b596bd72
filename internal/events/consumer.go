package events

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Topic is the Kafka topic carrying kitchen display events.
const Topic = "kds-events"

// Consumer reads order events off Kafka and forwards them on a channel.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(groupID string, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    Topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader}
}

// Run forwards decoded events to out until ctx is cancelled. Malformed
// messages are logged and skipped.
func (c *Consumer) Run(ctx context.Context, out chan<- OrderEvent) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx, out)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Error().Err(err).Msg("closing kafka reader")
	}
}

func (c *Consumer) processMessage(ctx context.Context, out chan<- OrderEvent) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error().Err(err).Msg("reading order event")
		return
	}

	ev, err := Decode(m.Value)
	if err != nil {
		log.Warn().Err(err).Msg("skipping malformed order event")
		return
	}

	select {
	case out <- ev:
	case <-ctx.Done():
	}
}
