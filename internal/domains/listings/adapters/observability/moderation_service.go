package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	platformobs "github.com/Apurer/bizrecipe-api/internal/platform/observability"
)

// ModerationService decorates community reporting.
type ModerationService struct {
	platformobs.Decorator
	inner     listingports.ModerationService
	filed     platformobs.Counter
	dismissed platformobs.Counter
}

func NewModerationService(inner listingports.ModerationService, opts ...platformobs.DecoratorOption) listingports.ModerationService {
	b := platformobs.NewDecorator(tracerName, opts...)
	return &ModerationService{
		Decorator: b,
		inner:     inner,
		filed:     b.Counter("moderation.service.reports_filed", "Number of reports filed against listings"),
		dismissed: b.Counter("moderation.service.dismissed", "Number of listings cleared by moderators"),
	}
}

func (s *ModerationService) Report(ctx context.Context, input listingtypes.ReportListingInput) (*listingtypes.ListingProjection, error) {
	ctx, span := s.Start(ctx, "ModerationService.Report", attribute.String("listing.id", input.ListingID))
	defer span.End()
	result, err := s.inner.Report(ctx, input)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to report listing", slog.String("listing.id", input.ListingID))
	}
	s.filed.Inc(ctx)
	s.Info(ctx, "listing reported",
		slog.String("listing.id", input.ListingID),
		slog.Int("report.count", len(result.Entity.ReportedBy)))
	return result, nil
}

func (s *ModerationService) ListReported(ctx context.Context) ([]*listingtypes.ReportedListingView, error) {
	ctx, span := s.Start(ctx, "ModerationService.ListReported")
	defer span.End()
	result, err := s.inner.ListReported(ctx)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to list reported listings")
	}
	span.SetAttributes(attribute.Int("listing.count", len(result)))
	return result, nil
}

func (s *ModerationService) Dismiss(ctx context.Context, listingID string) (*listingtypes.ListingProjection, error) {
	ctx, span := s.Start(ctx, "ModerationService.Dismiss", attribute.String("listing.id", listingID))
	defer span.End()
	result, err := s.inner.Dismiss(ctx, listingID)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to dismiss reports", slog.String("listing.id", listingID))
	}
	s.dismissed.Inc(ctx)
	s.Info(ctx, "reports dismissed", slog.String("listing.id", listingID))
	return result, nil
}

var _ listingports.ModerationService = (*ModerationService)(nil)
