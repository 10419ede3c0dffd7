// Package session keeps server-side login sessions and the signed cookie
// that points at them.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Store persists session id to user id mappings with a fixed lifetime.
type Store interface {
	Create(ctx context.Context, userID int) (string, error)
	Get(ctx context.Context, sid string) (int, error)
	Delete(ctx context.Context, sid string) error
	Close() error
}
