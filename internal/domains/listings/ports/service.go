package ports

import (
	"context"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
)

// ListingService exposes catalog use cases to adapters.
type ListingService interface {
	Create(ctx context.Context, input listingtypes.CreateListingInput) (*listingtypes.ListingProjection, error)
	GetByID(ctx context.Context, id string) (*listingtypes.ListingView, error)
	List(ctx context.Context) ([]*listingtypes.ListingView, error)
	Update(ctx context.Context, input listingtypes.UpdateListingInput) (*listingtypes.ListingProjection, error)
	Delete(ctx context.Context, id string) error
}

// OrderService exposes the order lifecycle.
type OrderService interface {
	SubmitOrder(ctx context.Context, input listingtypes.SubmitOrderInput) (*listingtypes.OrderView, error)
	UpdateOrder(ctx context.Context, input listingtypes.UpdateOrderInput) (*listingtypes.OrderView, error)
	ListActiveOrders(ctx context.Context) ([]listingtypes.OrderView, error)
	ListOrderHistory(ctx context.Context) ([]listingtypes.OrderView, error)
}

// ModerationService exposes community reporting.
type ModerationService interface {
	Report(ctx context.Context, input listingtypes.ReportListingInput) (*listingtypes.ListingProjection, error)
	ListReported(ctx context.Context) ([]*listingtypes.ReportedListingView, error)
	Dismiss(ctx context.Context, listingID string) (*listingtypes.ListingProjection, error)
}
