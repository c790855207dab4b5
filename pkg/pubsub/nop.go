package pubsub

import (
	"context"

	"github.com/groove-lab/backend/pkg/logger"
)

type nopPublisher struct {
	logger logger.Logger
}

// NewNopPublisher returns a Publisher which only logs the messages. It is
// used when no broker is configured.
func NewNopPublisher(logger logger.Logger) *nopPublisher {
	return &nopPublisher{logger: logger}
}

func (p *nopPublisher) Publish(ctx context.Context, topic string, pack *Pack) error {
	p.logger.Debugf("Drop message of topic %s: %s", topic, pack.Msg)
	return nil
}
