package mq

import (
	"context"
	"fmt"

	"github.com/easytech/webapi/config"
)

// Open builds the event broker selected by MQ_BACKEND.
func Open(ctx context.Context, cfg config.Config) (*MQ, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.MQ.Backend {
	case "", "none":
		backend = Noop{}
	case "memory":
		backend = NewMemory()
	case "rabbitmq":
		backend, err = NewRabbitMQClient(cfg.RabbitMQ)
	case "pubsub":
		backend, err = NewPubSubClient(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown MQ_BACKEND %q", cfg.MQ.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.MQ.Backend, err)
	}
	return New(backend, cfg.MQ.Channel), nil
}
