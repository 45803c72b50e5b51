// Package storage provides the persistence gateway: a small keyed blob store
// that holds full state snapshots. Each logical key ("data", "auth") maps to
// one serialized record, overwritten whole on every save.
package storage

import "context"

// Gateway is the durable snapshot store behind the in-memory state.
type Gateway interface {
	// Load returns the blob stored under key, or (nil, nil) when the key
	// has never been written.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save overwrites the blob stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Remove deletes the key; removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Well-known snapshot keys.
const (
	KeyData = "data"
	KeyAuth = "auth"
)
