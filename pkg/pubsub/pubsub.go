package pubsub

import (
	"context"
	"encoding/json"
	"time"
)

// Pack is one message of a topic. Messages with the same key keep their
// order.
type Pack struct {
	Key []byte
	Msg []byte
}

// NewJSONPack encodes v as the message of a pack keyed by key.
func NewJSONPack(key string, v any) (*Pack, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &Pack{Key: []byte(key), Msg: b}, nil
}

// Decode unmarshals the JSON message of pack into v.
func (p *Pack) Decode(v any) error {
	return json.Unmarshal(p.Msg, v)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
}

// SubscribeHandler is called once per consumed message, t is the time the
// message was produced.
type SubscribeHandler func(ctx context.Context, pack *Pack, t time.Time)

type Subscriber interface {
	Subscribe(ctx context.Context)
	Stop(ctx context.Context) error
}
