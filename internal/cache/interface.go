package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// CartKey embeds the currency code: a currency switch must miss the cache
// and trigger a fresh fetch, never a client-side conversion.
func CartKey(userID string, currency string) string {
	return CartKeyPrefix + ":" + userID + ":" + currency
}

const (
	ProductKeyPrefix = "product"
	CartKeyPrefix    = "cart"
)
