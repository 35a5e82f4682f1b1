// Package kv provides the durable key-value layer the domain store mirrors
// its collections into. Two production drivers exist: Redis for a local
// deployment and Postgres for a hosted one. Both hold one JSON document per
// logical key.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates the key has never been written.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is the durable layer contract. Values are opaque byte payloads
// (JSON documents in practice). Incr maintains named monotonic counters,
// used for human-readable sale numbering.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
}
