package kafka

import (
	"context"
	"encoding/json"
	"log"

	"commerce-backend/models"

	"github.com/segmentio/kafka-go"
)

// ProducerAPI is what services depend on; the concrete writer is injected so
// tests can stand in a mock and dropped environments can use nothing at all.
type ProducerAPI interface {
	SendOrderEvent(ctx context.Context, evt models.OrderEvent) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

var _ ProducerAPI = (*Producer)(nil)

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Printf("[KafkaProducer] initialized topic=%s brokers=%v", topic, brokers)
	return &Producer{writer: w, topic: topic}
}

// SendOrderEvent publishes one order lifecycle event, keyed by order id so
// events for the same order stay ordered within a partition.
func (p *Producer) SendOrderEvent(ctx context.Context, evt models.OrderEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(evt.OrderID.String()),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("❌ [KafkaProducer] failed to publish %s order=%s err=%v", evt.Type, evt.OrderID, err)
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	log.Printf("[KafkaProducer] closing writer topic=%s", p.topic)
	return p.writer.Close()
}
