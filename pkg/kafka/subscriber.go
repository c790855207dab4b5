package kafka

import (
	"context"
	"sync"

	"github.com/Shopify/sarama"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type subscriber struct {
	topics  []string
	client  sarama.ConsumerGroup
	handler pubsub.SubscribeHandler
}

func NewSubscriber(
	groupID string,
	brokerAddrs []string,
	topics []string,
	handler pubsub.SubscribeHandler,
) (*subscriber, error) {
	client, err := sarama.NewConsumerGroup(brokerAddrs, groupID, newConfig(groupID))
	if err != nil {
		return nil, err
	}

	return &subscriber{topics: topics, client: client, handler: handler}, nil
}

func (s *subscriber) Stop(ctx context.Context) error {
	return s.client.Close()
}

// Subscribe consumes in background until ctx is done. It returns once the
// first consumer group session is set up.
func (s *subscriber) Subscribe(ctx context.Context) {
	ready := make(chan struct{})
	consumer := &consumerGroupHandler{handler: s.handler}
	consumer.onSetup = func() { close(ready) }

	go func() {
		for {
			// Consume returns on every rebalance, a new session picks up the
			// new claims.
			if err := s.client.Consume(ctx, s.topics, consumer); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot consume topics %v: %v", s.topics, err)
			}

			if ctx.Err() != nil {
				return
			}
		}
	}()

	select {
	case <-ready:
	case <-ctx.Done():
	}
}

type consumerGroupHandler struct {
	handler pubsub.SubscribeHandler
	onSetup func()
	once    sync.Once
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.once.Do(h.onSetup)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(
	session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim,
) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			h.handler(session.Context(), &pubsub.Pack{Key: message.Key, Msg: message.Value}, message.Timestamp)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
