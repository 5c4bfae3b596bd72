package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Publisher writes order events to Kafka. The mock backend uses it to drive
// kitchen displays the way the production push channel does.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers ...string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, ev OrderEvent) error {
	value, err := Encode(ev)
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Order.ID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
