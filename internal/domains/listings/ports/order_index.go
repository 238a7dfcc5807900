package ports

import (
	"context"
	"errors"
)

// ErrIndexMiss is returned when the index holds no entry for an order.
var ErrIndexMiss = errors.New("order index miss")

// OrderIndex maps active order ids to the listing that owns them. It is a
// lookup accelerator: the repository remains the source of truth.
type OrderIndex interface {
	Put(ctx context.Context, orderID, listingID string) error
	Lookup(ctx context.Context, orderID string) (string, error)
	Remove(ctx context.Context, orderIDs ...string) error
}

// NoopOrderIndex always misses, forcing repository lookups.
var NoopOrderIndex OrderIndex = noopOrderIndex{}

type noopOrderIndex struct{}

func (noopOrderIndex) Put(_ context.Context, _, _ string) error { return nil }
func (noopOrderIndex) Lookup(_ context.Context, _ string) (string, error) {
	return "", ErrIndexMiss
}
func (noopOrderIndex) Remove(_ context.Context, _ ...string) error { return nil }
