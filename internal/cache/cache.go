package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	// SetNX stores a plain value only if the key is absent. Used for
	// one-shot OAuth state tokens.
	SetNX(ctx context.Context, key, val string, ttl time.Duration) (bool, error)
	GetDel(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}
