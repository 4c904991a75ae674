package kvstore

import (
	"context"

	redisclient "github.com/bautizosmaitte/storefront-api/pkg/redis"
)

// Redis persists entries through the shared redis client. Keys are stored
// under the storefront namespace without a TTL; snapshots live until the
// session is cleared.
type Redis struct {
	client *redisclient.Client
}

// NewRedis wraps the provided redis client as a Store.
func NewRedis(client *redisclient.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, redisclient.Key(key))
	if err != nil {
		if redisclient.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, redisclient.Key(key), value, 0)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisclient.Key(key))
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *Redis) Close() error {
	return r.client.Close()
}
