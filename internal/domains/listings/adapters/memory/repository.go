package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	"github.com/Apurer/bizrecipe-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory listing store used for development and tests.
// Listings are returned in insertion order.
type Repository struct {
	mu       sync.RWMutex
	listings map[string]*storedListing
	order    []string
	now      func() time.Time
}

type storedListing struct {
	listing  *domain.Listing
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		listings: map[string]*storedListing{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error) {
	if listing == nil {
		return nil, errors.New("cannot create nil listing")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.listings {
		if entry.listing.Name == listing.Name {
			return nil, ports.ErrDuplicateName
		}
	}
	if _, ok := r.listings[listing.ID]; ok {
		return nil, errors.New("listing id already exists")
	}
	stored := &storedListing{
		listing:  listing.Clone(),
		metadata: projection.Stamped(r.now()),
	}
	r.listings[listing.ID] = stored
	r.order = append(r.order, listing.ID)
	return projectionCopy(stored), nil
}

func (r *Repository) Save(_ context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error) {
	if listing == nil {
		return nil, errors.New("cannot save nil listing")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.listings[listing.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	entry.listing = listing.Clone()
	entry.metadata.Touch(r.now())
	return projectionCopy(entry), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Listing], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.listings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.listings, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Listing], error) {
	return r.filter(func(*domain.Listing) bool { return true }), nil
}

func (r *Repository) ListReported(_ context.Context) ([]*projection.Projection[*domain.Listing], error) {
	return r.filter(func(l *domain.Listing) bool { return l.IsReported }), nil
}

func (r *Repository) FindByQueuedOrderID(_ context.Context, orderID string) (*projection.Projection[*domain.Listing], error) {
	matches := r.filter(func(l *domain.Listing) bool { return l.HasQueuedOrder(orderID) })
	if len(matches) == 0 {
		return nil, ports.ErrOrderNotFound
	}
	return matches[0], nil
}

func (r *Repository) filter(keep func(*domain.Listing) bool) []*projection.Projection[*domain.Listing] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Listing], 0, len(r.order))
	for _, id := range r.order {
		entry := r.listings[id]
		if keep(entry.listing) {
			list = append(list, projectionCopy(entry))
		}
	}
	return list
}

func projectionCopy(entry *storedListing) *projection.Projection[*domain.Listing] {
	return projection.Of(entry.listing.Clone(), entry.metadata)
}
