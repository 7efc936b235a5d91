package outbox

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Dispatcher hands one locked outbox event to the queue transport. Events
// carry their own destination topic; fallbackTopic catches rows written
// without one.
type Dispatcher struct {
	log           *slog.Logger
	producer      Producer
	fallbackTopic string
}

func NewDispatcher(log *slog.Logger, producer Producer, fallbackTopic string) *Dispatcher {
	return &Dispatcher{log: log, producer: producer, fallbackTopic: fallbackTopic}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	topic := event.Destination
	if topic == "" {
		topic = d.fallbackTopic
	}

	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(event.Type)},
		{Key: "aggregate_id", Value: []byte(event.AggregateID)},
	}
	if event.Traceparent != "" {
		headers = append(headers, kafka.Header{Key: "traceparent", Value: []byte(event.Traceparent)})
	}

	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}
	if err := d.producer.WriteMessages(ctx, msg); err != nil {
		d.log.Error("outbox dispatch failed", "event_id", event.ID, "topic", topic, "err", err)
		return err
	}
	d.log.Info("outbox dispatched", "event_id", event.ID, "type", event.Type, "topic", topic)
	return nil
}
