package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	orderactivities "github.com/Apurer/bizrecipe-api/internal/platform/temporal/activities/orders"
)

type recordingOrders struct {
	inputs []listingtypes.SubmitOrderInput
	err    error
}

func (r *recordingOrders) SubmitOrder(_ context.Context, input listingtypes.SubmitOrderInput) (*listingtypes.OrderView, error) {
	r.inputs = append(r.inputs, input)
	if r.err != nil {
		return nil, r.err
	}
	return &listingtypes.OrderView{ListingID: input.ListingID, Order: domain.Order{ID: input.OrderID, Quantity: input.Quantity}}, nil
}

func (r *recordingOrders) UpdateOrder(context.Context, listingtypes.UpdateOrderInput) (*listingtypes.OrderView, error) {
	return nil, nil
}

func (r *recordingOrders) ListActiveOrders(context.Context) ([]listingtypes.OrderView, error) {
	return nil, nil
}

func (r *recordingOrders) ListOrderHistory(context.Context) ([]listingtypes.OrderView, error) {
	return nil, nil
}

type OrderSubmissionWorkflowSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env    *testsuite.TestWorkflowEnvironment
	orders *recordingOrders
}

func (s *OrderSubmissionWorkflowSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.orders = &recordingOrders{}
	activities := orderactivities.NewActivities(s.orders)
	s.env.RegisterActivityWithOptions(activities.SubmitOrder, activity.RegisterOptions{Name: orderactivities.SubmitOrderActivityName})
}

func (s *OrderSubmissionWorkflowSuite) TestAssignsOrderIDBeforeActivity() {
	s.env.ExecuteWorkflow(OrderSubmissionWorkflow, OrderSubmissionWorkflowInput{
		Command: listingtypes.SubmitOrderInput{ListingID: "l-1", Quantity: 2, Status: "Placed"},
		TraceID: "trace-1",
	})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	var view listingtypes.OrderView
	s.NoError(s.env.GetWorkflowResult(&view))
	s.NotEmpty(view.Order.ID)
	s.Require().Len(s.orders.inputs, 1)
	s.Equal(view.Order.ID, s.orders.inputs[0].OrderID)
}

func (s *OrderSubmissionWorkflowSuite) TestKeepsIdempotencyKeyPath() {
	s.env.ExecuteWorkflow(OrderSubmissionWorkflow, OrderSubmissionWorkflowInput{
		Command: listingtypes.SubmitOrderInput{ListingID: "l-1", IdempotencyKey: "key-1"},
	})

	s.NoError(s.env.GetWorkflowError())
	s.Require().Len(s.orders.inputs, 1)
	s.Empty(s.orders.inputs[0].OrderID)
	s.Equal("key-1", s.orders.inputs[0].IdempotencyKey)
}

func (s *OrderSubmissionWorkflowSuite) TestMissingListingIsNotRetried() {
	s.orders.err = listingports.ErrNotFound
	s.env.ExecuteWorkflow(OrderSubmissionWorkflow, OrderSubmissionWorkflowInput{
		Command: listingtypes.SubmitOrderInput{ListingID: "missing"},
	})

	err := s.env.GetWorkflowError()
	s.Require().Error(err)
	var appErr *temporal.ApplicationError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(orderactivities.ErrTypeListingNotFound, appErr.Type())
	s.Len(s.orders.inputs, 1)
}

func TestOrderSubmissionWorkflowSuite(t *testing.T) {
	suite.Run(t, new(OrderSubmissionWorkflowSuite))
}

func TestWithTraceID(t *testing.T) {
	require.Equal(t, []interface{}{"a", 1}, withTraceID("", "a", 1))
	require.Equal(t, []interface{}{"a", 1, "traceId", "t"}, withTraceID("t", "a", 1))
}
