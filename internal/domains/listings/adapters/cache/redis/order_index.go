package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

const defaultKeyPrefix = "bizrecipe:order-index:"

var _ ports.OrderIndex = (*OrderIndex)(nil)

// OrderIndex stores order-to-listing entries as plain Redis strings.
type OrderIndex struct {
	rdb    goredis.Cmdable
	prefix string
	ttl    time.Duration
}

// Option customises the Redis order index.
type Option func(*OrderIndex)

// WithKeyPrefix overrides the key namespace.
func WithKeyPrefix(prefix string) Option {
	return func(i *OrderIndex) {
		if prefix != "" {
			i.prefix = prefix
		}
	}
}

// WithTTL expires entries after ttl. Zero keeps them until removed.
func WithTTL(ttl time.Duration) Option {
	return func(i *OrderIndex) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

func NewOrderIndex(rdb goredis.Cmdable, opts ...Option) *OrderIndex {
	idx := &OrderIndex{rdb: rdb, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

func (i *OrderIndex) Put(ctx context.Context, orderID, listingID string) error {
	if err := i.ensureClient(); err != nil {
		return err
	}
	return i.rdb.Set(ctx, i.key(orderID), listingID, i.ttl).Err()
}

func (i *OrderIndex) Lookup(ctx context.Context, orderID string) (string, error) {
	if err := i.ensureClient(); err != nil {
		return "", err
	}
	listingID, err := i.rdb.Get(ctx, i.key(orderID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ports.ErrIndexMiss
	}
	if err != nil {
		return "", fmt.Errorf("order index lookup: %w", err)
	}
	return listingID, nil
}

func (i *OrderIndex) Remove(ctx context.Context, orderIDs ...string) error {
	if err := i.ensureClient(); err != nil {
		return err
	}
	if len(orderIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		keys = append(keys, i.key(id))
	}
	return i.rdb.Del(ctx, keys...).Err()
}

func (i *OrderIndex) key(orderID string) string {
	return i.prefix + orderID
}

func (i *OrderIndex) ensureClient() error {
	if i == nil || i.rdb == nil {
		return errors.New("redis order index not configured")
	}
	return nil
}
