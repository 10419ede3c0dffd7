package mq

import "context"

// Noop drops every published message. It backs MQ_BACKEND=none.
type Noop struct{}

func (Noop) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return "", nil
}

// Subscribe blocks until ctx is cancelled; nothing is ever delivered.
func (Noop) Subscribe(ctx context.Context, channel string, handler Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (Noop) Close() error {
	return nil
}
