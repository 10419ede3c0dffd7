package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/easytech/webapi/config"
	"google.golang.org/api/option"
)

const (
	pubsubAckDeadline    = 30 * time.Second
	pubsubMaxOutstanding = 32
)

// PubSubClient publishes events to Google Cloud Pub/Sub topics. Topic
// handles are cached so their publish batching survives across requests.
type PubSubClient struct {
	client *pubsub.Client
	suffix string

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

func NewPubSubClient(ctx context.Context, cfg config.PubSubConfig) (*PubSubClient, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("pubsub project id is required")
	}

	var opts []option.ClientOption
	if file := strings.TrimSpace(cfg.CredentialsFile); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}
	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub client: %w", err)
	}

	suffix := cfg.SubscriptionSuffix
	if suffix == "" {
		suffix = "-sub"
	}
	return &PubSubClient{
		client: client,
		suffix: suffix,
		topics: make(map[string]*pubsub.Topic),
	}, nil
}

// Publish blocks until the server has accepted the message and returns its id.
func (p *PubSubClient) Publish(ctx context.Context, topicName string, data []byte, attrs map[string]string) (string, error) {
	topic, err := p.topic(ctx, topicName)
	if err != nil {
		return "", err
	}
	return topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs}).Get(ctx)
}

// Subscribe pulls from the topic's "<topic><suffix>" subscription, creating
// both when missing. Handler errors nack the message for redelivery.
func (p *PubSubClient) Subscribe(ctx context.Context, topicName string, handler Handler) error {
	topic, err := p.topic(ctx, topicName)
	if err != nil {
		return err
	}
	sub, err := p.subscription(ctx, topicName+p.suffix, topic)
	if err != nil {
		return err
	}
	sub.ReceiveSettings.MaxOutstandingMessages = pubsubMaxOutstanding

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		err := handler(ctx, Message{ID: m.ID, Data: m.Data, Attributes: m.Attributes})
		if err != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
}

// Close flushes buffered publishes before closing the client.
func (p *PubSubClient) Close() error {
	p.mu.Lock()
	for name, topic := range p.topics {
		topic.Stop()
		delete(p.topics, name)
	}
	p.mu.Unlock()
	return p.client.Close()
}

func (p *PubSubClient) topic(ctx context.Context, name string) (*pubsub.Topic, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("pubsub topic is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if topic, ok := p.topics[name]; ok {
		return topic, nil
	}

	topic := p.client.Topic(name)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %s: %w", name, err)
	}
	if !exists {
		if topic, err = p.client.CreateTopic(ctx, name); err != nil {
			return nil, fmt.Errorf("create topic %s: %w", name, err)
		}
	}
	p.topics[name] = topic
	return topic, nil
}

func (p *PubSubClient) subscription(ctx context.Context, name string, topic *pubsub.Topic) (*pubsub.Subscription, error) {
	sub := p.client.Subscription(name)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check subscription %s: %w", name, err)
	}
	if exists {
		return sub, nil
	}
	return p.client.CreateSubscription(ctx, name, pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: pubsubAckDeadline,
	})
}
