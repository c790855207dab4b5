package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/pkg/kafka"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startSubscriber(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadIdentity()
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx).Kafka
	subscriber, err := kafka.NewSubscriber(
		"notification",
		[]string{cfg.Addr},
		[]string{common.ActivityTopic},
		func(ctx context.Context, pack *pubsub.Pack, t time.Time) {
			s.notificationDomain.Handle(xcontext.Inherit(ctx, s.ctx), pack, t)
		},
	)
	if err != nil {
		return err
	}
	s.subscriber = subscriber

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.subscriber.Subscribe(ctx)
	xcontext.Logger(s.ctx).Infof("Subscribed to topic %s", common.ActivityTopic)

	<-ctx.Done()
	xcontext.Logger(s.ctx).Infof("Subscriber stop")
	return s.subscriber.Stop(context.Background())
}
