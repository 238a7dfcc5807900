package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	listingapp "github.com/Apurer/bizrecipe-api/internal/domains/listings/application"
	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

const (
	// SubmitOrderActivityName queues an order on its listing.
	SubmitOrderActivityName = "orders.activities.SubmitOrder"

	// Application error types that survive the Temporal boundary.
	ErrTypeListingNotFound = "ListingNotFound"
	ErrTypeInvalidInput    = "InvalidOrderInput"
)

// Activities groups activities that operate on listing orders.
type Activities struct {
	service listingports.OrderService
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service listingports.OrderService) *Activities {
	return &Activities{service: service}
}

// SubmitOrder places the order. Missing listings and invalid input are not
// retried.
func (a *Activities) SubmitOrder(ctx context.Context, input listingtypes.SubmitOrderInput) (*listingtypes.OrderView, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order submit activity not initialized", "listingId", input.ListingID)
		return nil, errors.New("order submit activity not initialized")
	}
	logger.Info("SubmitOrder activity started", "listingId", input.ListingID, "orderId", input.OrderID)
	view, err := a.service.SubmitOrder(ctx, input)
	if err != nil {
		logger.Error("SubmitOrder activity failed", "listingId", input.ListingID, "error", err)
		switch {
		case errors.Is(err, listingports.ErrNotFound):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeListingNotFound, err)
		case errors.Is(err, listingapp.ErrInvalidInput):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
		}
		return nil, err
	}
	logger.Info("SubmitOrder activity completed", "listingId", view.ListingID, "orderId", view.Order.ID)
	return view, nil
}
