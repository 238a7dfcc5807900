package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	platformobs "github.com/Apurer/bizrecipe-api/internal/platform/observability"
)

// ListingService decorates catalog use cases.
type ListingService struct {
	platformobs.Decorator
	inner   listingports.ListingService
	created platformobs.Counter
	deleted platformobs.Counter
}

func NewListingService(inner listingports.ListingService, opts ...platformobs.DecoratorOption) listingports.ListingService {
	b := platformobs.NewDecorator(tracerName, opts...)
	return &ListingService{
		Decorator: b,
		inner:     inner,
		created:   b.Counter("listings.service.created", "Number of listings created"),
		deleted:   b.Counter("listings.service.deleted", "Number of listings deleted"),
	}
}

func (s *ListingService) Create(ctx context.Context, input listingtypes.CreateListingInput) (*listingtypes.ListingProjection, error) {
	ctx, span := s.Start(ctx, "ListingService.Create", attribute.String("listing.name", input.Name))
	defer span.End()
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to create listing", slog.String("listing.name", input.Name))
	}
	s.created.Inc(ctx)
	s.Info(ctx, "listing created", slog.String("listing.id", result.Entity.ID), slog.String("listing.name", result.Entity.Name))
	return result, nil
}

func (s *ListingService) GetByID(ctx context.Context, id string) (*listingtypes.ListingView, error) {
	ctx, span := s.Start(ctx, "ListingService.GetByID", attribute.String("listing.id", id))
	defer span.End()
	return s.inner.GetByID(ctx, id)
}

func (s *ListingService) List(ctx context.Context) ([]*listingtypes.ListingView, error) {
	ctx, span := s.Start(ctx, "ListingService.List")
	defer span.End()
	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to list listings")
	}
	span.SetAttributes(attribute.Int("listing.count", len(result)))
	return result, nil
}

func (s *ListingService) Update(ctx context.Context, input listingtypes.UpdateListingInput) (*listingtypes.ListingProjection, error) {
	ctx, span := s.Start(ctx, "ListingService.Update", attribute.String("listing.id", input.ID))
	defer span.End()
	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to update listing", slog.String("listing.id", input.ID))
	}
	s.Info(ctx, "listing updated", slog.String("listing.id", input.ID))
	return result, nil
}

func (s *ListingService) Delete(ctx context.Context, id string) error {
	ctx, span := s.Start(ctx, "ListingService.Delete", attribute.String("listing.id", id))
	defer span.End()
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.Fail(ctx, span, err, "failed to delete listing", slog.String("listing.id", id))
	}
	s.deleted.Inc(ctx)
	s.Info(ctx, "listing deleted", slog.String("listing.id", id))
	return nil
}

var _ listingports.ListingService = (*ListingService)(nil)
