// Package codestore is the short-lived key/value cache behind one-time 2FA
// codes and the category listing cache.
package codestore

import (
	"context"
	"errors"
	"time"
)

var ErrMiss = errors.New("codestore: miss")

// Store is a TTL cache with an atomic compare-and-delete, which is what makes
// one-time codes single use under concurrent verification.
type Store interface {
	// Put stores value under key for ttl, replacing any previous value.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns ErrMiss for absent or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	// ConsumeIfMatch deletes key only if it holds want, and reports whether
	// it did. Concurrent callers with the right value see exactly one true.
	ConsumeIfMatch(ctx context.Context, key, want string) (bool, error)

	Ping(ctx context.Context) error
}
