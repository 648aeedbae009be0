package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyKeyPending is returned by Load while the first request holding a key is still running.
var ErrIdempotencyKeyPending = errors.New("idempotency key is still being processed")

// CachedResponse is a completed response stored under an idempotency key.
type CachedResponse struct {
	StatusCode  int    `json:"statusCode"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers responses to client-supplied idempotency keys.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false if the key is already claimed or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Complete stores the response for a reserved key.
	Complete(ctx context.Context, key string, resp CachedResponse, ttl time.Duration) error

	// Load returns the stored response, ErrIdempotencyKeyPending, or nil and no error when the key is unknown.
	Load(ctx context.Context, key string) (*CachedResponse, error)

	// Release drops a reservation so the request can be retried.
	Release(ctx context.Context, key string) error
}
