package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	orderactivities "github.com/Apurer/bizrecipe-api/internal/platform/temporal/activities/orders"
)

// RunOrderSubmissionSequence executes the activities needed to queue an order.
func RunOrderSubmissionSequence(ctx workflow.Context, input listingtypes.SubmitOrderInput) (*listingtypes.OrderView, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order submission sequence started", "listingId", input.ListingID, "orderId", input.OrderID)
	submitOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.ErrTypeListingNotFound,
				orderactivities.ErrTypeInvalidInput,
			},
		},
	}

	var view listingtypes.OrderView
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, submitOptions), orderactivities.SubmitOrderActivityName, input).Get(ctx, &view)
	if err != nil {
		logger.Error("order submission sequence failed", "listingId", input.ListingID, "error", err)
		return nil, err
	}
	logger.Info("order submission sequence persisted", "listingId", view.ListingID, "orderId", view.Order.ID)
	return &view, nil
}
