package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/easytech/webapi/config"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const eventContentType = "application/json"

var errPublishNacked = errors.New("rabbitmq: broker did not confirm publish")

// RabbitMQClient sends events to named queues on the default exchange.
// Publishes go through one confirm-mode channel; each subscription opens
// its own channel so prefetch applies per consumer.
type RabbitMQClient struct {
	conn       *amqp.Connection
	publisher  *amqp.Channel
	durable    bool
	autoDelete bool
	prefetch   int

	mu       sync.Mutex
	declared map[string]struct{}
}

// NewRabbitMQClient dials the broker and puts the publish channel into
// confirm mode.
func NewRabbitMQClient(cfg config.RabbitMQConfig) (*RabbitMQClient, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}
	publisher, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := publisher.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	return &RabbitMQClient{
		conn:       conn,
		publisher:  publisher,
		durable:    cfg.QueueDurable,
		autoDelete: cfg.QueueAutoDelete,
		prefetch:   cfg.PrefetchCount,
		declared:   make(map[string]struct{}),
	}, nil
}

// Publish sends a persistent message and waits for the broker to confirm it.
func (r *RabbitMQClient) Publish(ctx context.Context, queue string, data []byte, attrs map[string]string) (string, error) {
	if strings.TrimSpace(queue) == "" {
		return "", errors.New("rabbitmq queue is required")
	}
	if err := r.declareOnce(queue); err != nil {
		return "", err
	}

	headers := make(amqp.Table, len(attrs))
	for key, value := range attrs {
		headers[key] = value
	}
	msg := amqp.Publishing{
		MessageId:    uuid.NewString(),
		ContentType:  eventContentType,
		DeliveryMode: amqp.Persistent,
		Type:         attrs[TypeAttribute],
		Headers:      headers,
		Body:         data,
	}

	confirm, err := r.publisher.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, msg)
	if err != nil {
		return "", err
	}
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return "", err
	}
	if !acked {
		return "", errPublishNacked
	}
	return msg.MessageId, nil
}

// Subscribe consumes queue until ctx is done. A handler error requeues the
// delivery once; a delivery that fails again is dropped.
func (r *RabbitMQClient) Subscribe(ctx context.Context, queue string, handler Handler) error {
	if strings.TrimSpace(queue) == "" {
		return errors.New("rabbitmq queue is required")
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if r.prefetch > 0 {
		if err := ch.Qos(r.prefetch, 0, false); err != nil {
			return err
		}
	}
	if _, err := r.declare(ch, queue); err != nil {
		return err
	}

	deliveries, err := ch.Consume(queue, "webapi-"+uuid.NewString(), false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			msg := Message{
				ID:         delivery.MessageId,
				Data:       delivery.Body,
				Attributes: attributesFromHeaders(delivery.Headers),
			}
			if err := handler(ctx, msg); err != nil {
				_ = delivery.Nack(false, !delivery.Redelivered)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func (r *RabbitMQClient) Close() error {
	_ = r.publisher.Close()
	return r.conn.Close()
}

func (r *RabbitMQClient) declareOnce(queue string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.declared[queue]; ok {
		return nil
	}
	if _, err := r.declare(r.publisher, queue); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	r.declared[queue] = struct{}{}
	return nil
}

func (r *RabbitMQClient) declare(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	return ch.QueueDeclare(queue, r.durable, r.autoDelete, false, false, nil)
}

func attributesFromHeaders(headers amqp.Table) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(headers))
	for key, value := range headers {
		switch v := value.(type) {
		case string:
			attrs[key] = v
		case []byte:
			attrs[key] = string(v)
		default:
			attrs[key] = fmt.Sprint(v)
		}
	}
	return attrs
}
