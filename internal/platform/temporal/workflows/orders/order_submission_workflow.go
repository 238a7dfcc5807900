package orders

import (
	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	"github.com/Apurer/bizrecipe-api/internal/platform/temporal/sequences"
)

const (
	// OrderSubmissionWorkflowName is the public identifier for registering the workflow.
	OrderSubmissionWorkflowName = "orders.workflows.Submission"
	// OrderSubmissionTaskQueue is the queue consumed by the worker processing order workflows.
	OrderSubmissionTaskQueue = "ORDER_SUBMISSION"
)

// OrderSubmissionWorkflowInput captures the payload required to queue an order.
type OrderSubmissionWorkflowInput struct {
	Command listingtypes.SubmitOrderInput
	TraceID string
}

// OrderSubmissionWorkflow queues an order on its listing. The order id is
// fixed before the activity runs so activity retries cannot create duplicates.
func OrderSubmissionWorkflow(ctx workflow.Context, input OrderSubmissionWorkflowInput) (*listingtypes.OrderView, error) {
	logger := workflow.GetLogger(ctx)
	command := input.Command
	if command.OrderID == "" && command.IdempotencyKey == "" {
		encoded := workflow.SideEffect(ctx, func(workflow.Context) interface{} {
			return uuid.NewString()
		})
		if err := encoded.Get(&command.OrderID); err != nil {
			return nil, err
		}
	}
	logger.Info("OrderSubmissionWorkflow started", withTraceID(input.TraceID, "listingId", command.ListingID, "orderId", command.OrderID)...)
	view, err := sequences.RunOrderSubmissionSequence(ctx, command)
	if err != nil {
		logger.Error("OrderSubmissionWorkflow failed", withTraceID(input.TraceID, "listingId", command.ListingID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderSubmissionWorkflow completed", withTraceID(input.TraceID, "orderId", view.Order.ID)...)
	return view, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
