package cache

import (
	"context"
	"time"
)

// BytesCache stores serialized responses with a TTL. Implementations are the
// in-process TTLCache and the shared RedisCache.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
