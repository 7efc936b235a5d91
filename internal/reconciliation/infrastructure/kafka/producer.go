package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// NotificationWriter delivers webhook notification jobs to the vendor queues.
// Messages are keyed by refund id and hash-balanced, so every notification for
// one refund lands on the same partition and consumers see its status changes
// in order. All replicas must ack before the relay marks the outbox row sent.
type NotificationWriter struct {
	*kafka.Writer
}

func NewNotificationWriter(brokers []string) *NotificationWriter {
	return &NotificationWriter{
		Writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (w *NotificationWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return w.Writer.WriteMessages(ctx, msgs...)
}
