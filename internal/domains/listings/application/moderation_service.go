package application

import (
	"context"
	"time"

	types "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

// ModerationService handles community reports against listings.
type ModerationService struct {
	repo  ports.Repository
	names nameResolver
	now   func() time.Time
}

func NewModerationService(repo ports.Repository, users ports.UserDirectory) *ModerationService {
	if users == nil {
		users = ports.NoopUserDirectory
	}
	return &ModerationService{repo: repo, names: nameResolver{users: users}, now: time.Now}
}

// Report flags the listing and appends the report. A missing listing wins
// over an incomplete report.
func (s *ModerationService) Report(ctx context.Context, input types.ReportListingInput) (*types.ListingProjection, error) {
	proj, err := s.repo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	proj.Entity.FileReport(domain.Report{
		User:              input.User,
		Feedback:          input.Feedback,
		AdditionalComment: input.AdditionalComment,
		ReportedAt:        s.now().UTC(),
	})
	saved, err := s.repo.Save(ctx, proj.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListReported returns flagged listings with reporters resolved.
func (s *ModerationService) ListReported(ctx context.Context) ([]*types.ReportedListingView, error) {
	projections, err := s.repo.ListReported(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	var users []string
	for _, p := range projections {
		for _, r := range p.Entity.ReportedBy {
			users = append(users, r.User)
		}
	}
	names, err := s.names.resolve(ctx, users)
	if err != nil {
		return nil, err
	}
	views := make([]*types.ReportedListingView, 0, len(projections))
	for _, p := range projections {
		view := &types.ReportedListingView{Listing: p, Reports: make([]types.ReportView, 0, len(p.Entity.ReportedBy))}
		for _, r := range p.Entity.ReportedBy {
			view.Reports = append(view.Reports, types.ReportView{Report: r, UserName: displayName(names, r.User)})
		}
		views = append(views, view)
	}
	return views, nil
}

// Dismiss clears the flag and every report.
func (s *ModerationService) Dismiss(ctx context.Context, listingID string) (*types.ListingProjection, error) {
	proj, err := s.repo.GetByID(ctx, listingID)
	if err != nil {
		return nil, mapError(err)
	}
	proj.Entity.DismissReports()
	saved, err := s.repo.Save(ctx, proj.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.ModerationService = (*ModerationService)(nil)
