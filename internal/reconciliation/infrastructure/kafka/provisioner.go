package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// Provisioner creates the durable vendor queues before the relay starts
// dispatching to them. Re-provisioning an existing topic is a no-op.
type Provisioner struct {
	log    *slog.Logger
	client *kafka.Client
}

func NewProvisioner(log *slog.Logger, brokers []string) *Provisioner {
	return &Provisioner{
		log:    log,
		client: &kafka.Client{Addr: kafka.TCP(brokers...)},
	}
}

func (p *Provisioner) EnsureTopics(ctx context.Context, topics []string) error {
	if len(topics) == 0 {
		return nil
	}

	configs := make([]kafka.TopicConfig, 0, len(topics))
	for _, t := range topics {
		configs = append(configs, kafka.TopicConfig{
			Topic:             t,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}

	resp, err := p.client.CreateTopics(ctx, &kafka.CreateTopicsRequest{Topics: configs})
	if err != nil {
		return err
	}
	for topic, terr := range resp.Errors {
		if terr != nil && terr != kafka.TopicAlreadyExists {
			return fmt.Errorf("create topic %s: %w", topic, terr)
		}
	}
	p.log.Info("vendor queues provisioned", "count", len(topics))
	return nil
}
