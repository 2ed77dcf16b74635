package services

import (
	"context"
	"encoding/json"

	"commerce-backend/models"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderEventConsumer is the in-process worker draining the order event
// topic. Messages are committed only after successful processing, so a
// crash mid-handling redelivers; the notification service's event-id
// dedupe absorbs the resulting duplicates.
type OrderEventConsumer struct {
	reader        *kafkago.Reader
	notifications NotificationService
	logger        *zap.Logger
}

func NewOrderEventConsumer(brokers []string, topic, groupID string, notifications NotificationService, logger *zap.Logger) *OrderEventConsumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1e3,
		MaxBytes: 10e6,
	})
	return &OrderEventConsumer{
		reader:        r,
		notifications: notifications,
		logger:        logger,
	}
}

func (c *OrderEventConsumer) Start(ctx context.Context) {
	c.logger.Info("order event consumer started")
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("order event consumer shutting down")
				return
			}
			c.logger.Error("fetch error", zap.Error(err))
			continue
		}

		var evt models.OrderEvent
		if err := json.Unmarshal(m.Value, &evt); err != nil {
			c.logger.Error("invalid event payload, skipping",
				zap.Error(err),
				zap.ByteString("payload", m.Value),
			)
			// unparseable: commit to avoid an infinite redelivery loop
			c.commit(ctx, m)
			continue
		}

		if err := c.notifications.ProcessOrderEvent(ctx, &evt); err != nil {
			c.logger.Error("failed to process event",
				zap.String("event_id", evt.EventID.String()),
				zap.String("type", evt.Type),
				zap.Error(err),
			)
			// no commit: the event is redelivered and retried
			continue
		}

		c.commit(ctx, m)
	}
}

func (c *OrderEventConsumer) commit(ctx context.Context, m kafkago.Message) {
	if err := c.reader.CommitMessages(ctx, m); err != nil {
		c.logger.Error("failed to commit offset", zap.Error(err))
	}
}

func (c *OrderEventConsumer) Close() error {
	return c.reader.Close()
}
