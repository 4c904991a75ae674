package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound signals that no value is stored under the requested key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the durable key-value surface backing cart and favorites
// snapshots. Implementations must treat Set as an upsert.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// IsNotFound reports whether err means a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
