package memory

import (
	"context"
	"sync"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

var _ ports.OrderIndex = (*OrderIndex)(nil)

// OrderIndex keeps the order-to-listing mapping in process memory.
type OrderIndex struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewOrderIndex() *OrderIndex {
	return &OrderIndex{entries: map[string]string{}}
}

func (i *OrderIndex) Put(_ context.Context, orderID, listingID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[orderID] = listingID
	return nil
}

func (i *OrderIndex) Lookup(_ context.Context, orderID string) (string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	listingID, ok := i.entries[orderID]
	if !ok {
		return "", ports.ErrIndexMiss
	}
	return listingID, nil
}

func (i *OrderIndex) Remove(_ context.Context, orderIDs ...string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, id := range orderIDs {
		delete(i.entries, id)
	}
	return nil
}
