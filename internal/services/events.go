package services

import (
	"context"
	"log"
	"time"
)

const publishTimeout = 5 * time.Second

// EventPublisher sends site notifications to the event channel.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, payload any) (string, error)
}

// notify publishes without failing the caller. The publish outlives a
// cancelled request but is bounded by publishTimeout.
func notify(ctx context.Context, events EventPublisher, eventType string, payload any) {
	if events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if _, err := events.PublishEvent(ctx, eventType, payload); err != nil {
		log.Printf("publish %s failed: %v", eventType, err)
	}
}
