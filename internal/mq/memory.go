package mq

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process broker. Published messages are kept so tests can
// inspect them and are delivered to any active subscribers.
type Memory struct {
	mu          sync.Mutex
	published   map[string][]Message
	subscribers map[string][]chan Message
}

func NewMemory() *Memory {
	return &Memory{
		published:   make(map[string][]Message),
		subscribers: make(map[string][]chan Message),
	}
}

func (m *Memory) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	msg := Message{ID: uuid.NewString(), Data: data, Attributes: attrs}

	m.mu.Lock()
	m.published[channel] = append(m.published[channel], msg)
	subs := append([]chan Message(nil), m.subscribers[channel]...)
	m.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub <- msg:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return msg.ID, nil
}

func (m *Memory) Subscribe(ctx context.Context, channel string, handler Handler) error {
	sub := make(chan Message, 16)
	m.mu.Lock()
	m.subscribers[channel] = append(m.subscribers[channel], sub)
	m.mu.Unlock()

	defer m.unsubscribe(channel, sub)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-sub:
			// no redelivery in memory; handler errors are dropped
			_ = handler(ctx, msg)
		}
	}
}

// Published returns a copy of the messages sent to channel so far.
func (m *Memory) Published(channel string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.published[channel]...)
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) unsubscribe(channel string, sub chan Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := m.subscribers[channel]
	for i, candidate := range subs {
		if candidate == sub {
			m.subscribers[channel] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
