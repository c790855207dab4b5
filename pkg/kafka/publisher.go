package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/groove-lab/backend/pkg/pubsub"
)

type publisher struct {
	producer sarama.SyncProducer
}

func NewPublisher(clientID string, brokerAddrs []string) (*publisher, error) {
	producer, err := sarama.NewSyncProducer(brokerAddrs, newConfig(clientID))
	if err != nil {
		return nil, err
	}

	return &publisher{producer: producer}, nil
}

func (p *publisher) Stop(ctx context.Context) error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(pack.Msg),
	}

	if len(pack.Key) > 0 {
		msg.Key = sarama.ByteEncoder(pack.Key)
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("cannot send message to %s: %w", topic, err)
	}

	return nil
}
