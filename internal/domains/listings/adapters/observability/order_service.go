package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	platformobs "github.com/Apurer/bizrecipe-api/internal/platform/observability"
)

// OrderService decorates the order lifecycle.
type OrderService struct {
	platformobs.Decorator
	inner        listingports.OrderService
	submitted    platformobs.Counter
	transitioned platformobs.Counter
}

func NewOrderService(inner listingports.OrderService, opts ...platformobs.DecoratorOption) listingports.OrderService {
	b := platformobs.NewDecorator(tracerName, opts...)
	return &OrderService{
		Decorator:    b,
		inner:        inner,
		submitted:    b.Counter("orders.service.submitted", "Number of orders submitted"),
		transitioned: b.Counter("orders.service.transitioned", "Number of order status transitions"),
	}
}

func (s *OrderService) SubmitOrder(ctx context.Context, input listingtypes.SubmitOrderInput) (*listingtypes.OrderView, error) {
	ctx, span := s.Start(ctx, "OrderService.SubmitOrder", attribute.String("listing.id", input.ListingID), attribute.Int("order.quantity", input.Quantity))
	defer span.End()
	result, err := s.inner.SubmitOrder(ctx, input)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to submit order", slog.String("listing.id", input.ListingID))
	}
	span.SetAttributes(attribute.String("order.id", result.Order.ID))
	s.submitted.Inc(ctx)
	s.Info(ctx, "order submitted",
		slog.String("listing.id", result.ListingID),
		slog.String("order.id", result.Order.ID),
		slog.String("order.total", result.Order.TotalPrice.StringFixed(2)))
	return result, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, input listingtypes.UpdateOrderInput) (*listingtypes.OrderView, error) {
	ctx, span := s.Start(ctx, "OrderService.UpdateOrder", attribute.String("order.id", input.OrderID), attribute.String("order.status", input.Status))
	defer span.End()
	result, err := s.inner.UpdateOrder(ctx, input)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to update order",
			slog.String("order.id", input.OrderID), slog.String("order.status", input.Status))
	}
	s.transitioned.Inc(ctx, attribute.String("status", string(result.Order.Status)))
	s.Info(ctx, "order updated", slog.String("order.id", input.OrderID), slog.String("order.status", string(result.Order.Status)))
	return result, nil
}

func (s *OrderService) ListActiveOrders(ctx context.Context) ([]listingtypes.OrderView, error) {
	ctx, span := s.Start(ctx, "OrderService.ListActiveOrders")
	defer span.End()
	result, err := s.inner.ListActiveOrders(ctx)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to list active orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *OrderService) ListOrderHistory(ctx context.Context) ([]listingtypes.OrderView, error) {
	ctx, span := s.Start(ctx, "OrderService.ListOrderHistory")
	defer span.End()
	result, err := s.inner.ListOrderHistory(ctx)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to list order history")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

var _ listingports.OrderService = (*OrderService)(nil)
