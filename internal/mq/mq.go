package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Event is the JSON envelope for site notifications.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt string          `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Event types.
const (
	EventContactSubmitted     = "contact.submitted"
	EventNewsletterSubscribed = "newsletter.subscribed"
	EventBookingRequested     = "booking.requested"
)

// TypeAttribute carries the event type alongside the encoded body.
const TypeAttribute = "type"

// MQ wraps a backend and the channel events are published to.
type MQ struct {
	backend Backend
	channel string
}

// New constructs an MQ wrapper publishing to channel.
func New(backend Backend, channel string) *MQ {
	return &MQ{backend: backend, channel: channel}
}

func (m *MQ) Channel() string {
	return m.channel
}

// PublishEvent encodes payload into an Event and sends it.
func (m *MQ) PublishEvent(ctx context.Context, eventType string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	data, err := json.Marshal(Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Payload:    body,
	})
	if err != nil {
		return "", err
	}
	return m.backend.Publish(ctx, m.channel, data, map[string]string{TypeAttribute: eventType})
}

// SubscribeEvents decodes each delivery on the event channel before
// passing it to handler. Undecodable messages are rejected.
func (m *MQ) SubscribeEvents(ctx context.Context, handler func(ctx context.Context, event Event) error) error {
	return m.backend.Subscribe(ctx, m.channel, func(ctx context.Context, msg Message) error {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return fmt.Errorf("decode event %s: %w", msg.ID, err)
		}
		return handler(ctx, event)
	})
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}
