package ports

import (
	"context"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
)

// WorkflowOrchestrator runs order submission through a durable workflow.
type WorkflowOrchestrator interface {
	SubmitOrder(ctx context.Context, input listingtypes.SubmitOrderInput) (*listingtypes.OrderView, error)
}
