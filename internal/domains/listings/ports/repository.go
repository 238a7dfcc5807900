package ports

import (
	"context"
	"errors"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/shared/projection"
)

var (
	ErrNotFound      = errors.New("listing not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrDuplicateName = errors.New("listing name already exists")
)

// Repository persists listing aggregates. Every write replaces the whole
// aggregate, embedded orders and reports included.
type Repository interface {
	// Create inserts a new listing, failing with ErrDuplicateName when the name is taken.
	Create(ctx context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error)
	// Save overwrites an existing listing, failing with ErrNotFound when it is gone.
	Save(ctx context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Listing], error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Listing], error)
	ListReported(ctx context.Context) ([]*projection.Projection[*domain.Listing], error)
	// FindByQueuedOrderID returns the listing whose active queue holds the order.
	FindByQueuedOrderID(ctx context.Context, orderID string) (*projection.Projection[*domain.Listing], error)
}
