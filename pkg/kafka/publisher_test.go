package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"type":"COMMENTED"}` {
			return errors.New("unexpected message")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := &publisher{producer: producer}
	defer func() { require.NoError(t, p.Stop(context.Background())) }()

	pack, err := pubsub.NewJSONPack("42", map[string]string{"type": "COMMENTED"})
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), "activity", pack))

	err = p.Publish(context.Background(), "activity", pack)
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestNewConfig(t *testing.T) {
	config := newConfig("api")
	require.NoError(t, config.Validate())
	require.Equal(t, "api", config.ClientID)
	require.True(t, config.Producer.Return.Successes)
}
