package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	listingapp "github.com/Apurer/bizrecipe-api/internal/domains/listings/application"
	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	orderactivities "github.com/Apurer/bizrecipe-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/bizrecipe-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderSubmissionTaskQueue}
}

// SubmitOrder starts the submission workflow and waits for its result. A
// repeated idempotency key joins the workflow already started for it.
func (o *TemporalOrderWorkflows) SubmitOrder(ctx context.Context, input listingtypes.SubmitOrderInput) (*listingtypes.OrderView, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildOrderSubmissionWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderSubmissionWorkflow,
		orderworkflows.OrderSubmissionWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var view listingtypes.OrderView
			if err := existingRun.Get(ctx, &view); err != nil {
				return nil, translateWorkflowError(err)
			}
			return &view, nil
		}
		return nil, err
	}
	var view listingtypes.OrderView
	if err := run.Get(ctx, &view); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &view, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.OrderService
}

func NewInlineOrderWorkflows(service ports.OrderService) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

func (o *InlineOrderWorkflows) SubmitOrder(ctx context.Context, input listingtypes.SubmitOrderInput) (*listingtypes.OrderView, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.SubmitOrder(ctx, input)
}

// translateWorkflowError restores the sentinel errors the HTTP layer maps.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrTypeListingNotFound:
		return fmt.Errorf("%w: %s", ports.ErrNotFound, appErr.Error())
	case orderactivities.ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", listingapp.ErrInvalidInput, appErr.Error())
	}
	return err
}

func buildOrderSubmissionWorkflowID(input listingtypes.SubmitOrderInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-submission-idem-%s", hashIdempotencyKey(input.ListingID+":"+key))
	}
	if input.OrderID != "" {
		return fmt.Sprintf("order-submission-%s", input.OrderID)
	}
	return fmt.Sprintf("order-submission-%s-%s", input.ListingID, traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
