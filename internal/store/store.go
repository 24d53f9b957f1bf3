// Package store defines the key-value capability the persistence adapter
// depends on, with in-memory, Redis, and Postgres implementations. Keys
// and values are plain strings; the adapter owns serialization.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("store: key not found")

// KV is an abstract string key-value store.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
