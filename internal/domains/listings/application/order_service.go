package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	types "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	"github.com/Apurer/bizrecipe-api/internal/shared/projection"
)

// OrderService drives the order lifecycle inside listing aggregates.
type OrderService struct {
	repo    ports.Repository
	index   ports.OrderIndex
	pricing domain.PricingPolicy
	names   nameResolver
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

func NewOrderService(repo ports.Repository, index ports.OrderIndex, users ports.UserDirectory, pricing domain.PricingPolicy, opts ...Option) *OrderService {
	if index == nil {
		index = ports.NoopOrderIndex
	}
	if users == nil {
		users = ports.NoopUserDirectory
	}
	return &OrderService{
		repo:    repo,
		index:   index,
		pricing: pricing,
		names:   nameResolver{users: users},
		logger:  collectOptions(opts).logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// OrderIDForKey derives a stable order id from an idempotency key so that
// replays of the same submission land on the same order.
func OrderIDForKey(listingID, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(listingID+":"+key)).String()
}

// SubmitOrder prices and queues a new order. When the resolved order id is
// already present in the listing the stored order is returned unchanged.
func (s *OrderService) SubmitOrder(ctx context.Context, input types.SubmitOrderInput) (*types.OrderView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	proj, err := s.repo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, mapError(err)
	}
	listing := proj.Entity

	orderID := input.OrderID
	if orderID == "" && input.IdempotencyKey != "" {
		orderID = OrderIDForKey(listing.ID, input.IdempotencyKey)
	}
	if orderID != "" {
		if existing, ok := listing.FindOrder(orderID); ok {
			return s.view(ctx, listing, existing)
		}
	} else {
		orderID = s.newID()
	}

	placed, err := listing.PlaceOrder(domain.Order{
		ID:                   orderID,
		Buyer:                input.Buyer,
		Quantity:             input.Quantity,
		TotalPrice:           s.pricing.TotalPrice(listing.Price, input.Quantity),
		Preferences:          input.Preferences,
		DeliveryAddress:      input.DeliveryAddress,
		TimeToDeliver:        input.TimeToDeliver,
		DateToDeliver:        input.DateToDeliver,
		EstimatedArrivalTime: input.EstimatedArrivalTime,
		Status:               domain.Status(input.Status),
		CreatedAt:            s.now().UTC(),
	})
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, listing)
	if err != nil {
		return nil, mapError(err)
	}
	s.indexPut(ctx, placed.ID, saved.Entity.ID)
	return s.view(ctx, saved.Entity, placed)
}

// UpdateOrder transitions an active order. Done orders move to the history,
// Rejected orders are discarded; both leave the index.
func (s *OrderService) UpdateOrder(ctx context.Context, input types.UpdateOrderInput) (*types.OrderView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	proj, err := s.locate(ctx, input.OrderID)
	if err != nil {
		return nil, mapError(err)
	}
	listing := proj.Entity
	updated, err := listing.TransitionOrder(input.OrderID, input.EstimatedArrivalTime, domain.Status(input.Status))
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, listing)
	if err != nil {
		return nil, mapError(err)
	}
	if updated.Status.IsTerminal() {
		if err := s.index.Remove(ctx, updated.ID); err != nil {
			s.logger.WarnContext(ctx, "order index remove failed",
				slog.String("order_id", updated.ID), slog.String("error", err.Error()))
		}
	}
	return s.view(ctx, saved.Entity, updated)
}

// ListActiveOrders flattens every listing's queue.
func (s *OrderService) ListActiveOrders(ctx context.Context) ([]types.OrderView, error) {
	return s.flatten(ctx, func(l *domain.Listing) []domain.Order { return l.OrderQueue })
}

// ListOrderHistory flattens every listing's archived orders.
func (s *OrderService) ListOrderHistory(ctx context.Context) ([]types.OrderView, error) {
	return s.flatten(ctx, func(l *domain.Listing) []domain.Order { return l.OrderHistory })
}

func (s *OrderService) flatten(ctx context.Context, pick func(*domain.Listing) []domain.Order) ([]types.OrderView, error) {
	projections, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	listings := projection.Entities(projections)
	var buyers []string
	for _, l := range listings {
		for _, o := range pick(l) {
			buyers = append(buyers, o.Buyer)
		}
	}
	names, err := s.names.resolve(ctx, buyers)
	if err != nil {
		return nil, err
	}
	views := make([]types.OrderView, 0, len(buyers))
	for _, l := range listings {
		for _, o := range pick(l) {
			views = append(views, types.OrderView{
				Order:       o,
				ListingID:   l.ID,
				ListingName: l.Name,
				BuyerName:   displayName(names, o.Buyer),
			})
		}
	}
	return views, nil
}

// locate finds the listing whose queue holds the order, consulting the index
// first and healing it from the repository on a miss.
func (s *OrderService) locate(ctx context.Context, orderID string) (*types.ListingProjection, error) {
	if listingID, err := s.index.Lookup(ctx, orderID); err == nil {
		proj, err := s.repo.GetByID(ctx, listingID)
		switch {
		case err == nil && proj.Entity.HasQueuedOrder(orderID):
			return proj, nil
		case err != nil && !errors.Is(err, ports.ErrNotFound):
			return nil, err
		}
	}
	proj, err := s.repo.FindByQueuedOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.indexPut(ctx, orderID, proj.Entity.ID)
	return proj, nil
}

// indexPut records the owner of an order. The repository stays the source of
// truth, so a failed write only costs a scan on the next lookup.
func (s *OrderService) indexPut(ctx context.Context, orderID, listingID string) {
	if err := s.index.Put(ctx, orderID, listingID); err != nil {
		s.logger.WarnContext(ctx, "order index put failed",
			slog.String("order_id", orderID), slog.String("listing_id", listingID), slog.String("error", err.Error()))
	}
}

func (s *OrderService) view(ctx context.Context, listing *domain.Listing, order domain.Order) (*types.OrderView, error) {
	names, err := s.names.resolve(ctx, []string{order.Buyer})
	if err != nil {
		return nil, err
	}
	return &types.OrderView{
		Order:       order,
		ListingID:   listing.ID,
		ListingName: listing.Name,
		BuyerName:   displayName(names, order.Buyer),
	}, nil
}

var _ ports.OrderService = (*OrderService)(nil)
