package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	types "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

// ListingService manages the listing catalog.
type ListingService struct {
	repo  ports.Repository
	index ports.OrderIndex
	names  nameResolver
	logger *slog.Logger
	newID  func() string
}

// NewListingService wires the catalog use cases. A nil index or directory
// falls back to the no-op implementations.
func NewListingService(repo ports.Repository, index ports.OrderIndex, users ports.UserDirectory, opts ...Option) *ListingService {
	if index == nil {
		index = ports.NoopOrderIndex
	}
	if users == nil {
		users = ports.NoopUserDirectory
	}
	return &ListingService{
		repo:   repo,
		index:  index,
		names:  nameResolver{users: users},
		logger: collectOptions(opts).logger,
		newID:  uuid.NewString,
	}
}

// Create publishes a new listing.
func (s *ListingService) Create(ctx context.Context, input types.CreateListingInput) (*types.ListingProjection, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	listing, err := domain.NewListing(s.newID(), input.Name, input.Ingredients, input.Instructions, *input.Calories, input.Image, *input.Price)
	if err != nil {
		return nil, mapError(err)
	}
	listing.AssignOwner(input.SubmittedBy)
	saved, err := s.repo.Create(ctx, listing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a listing with its owner and buyers resolved.
func (s *ListingService) GetByID(ctx context.Context, id string) (*types.ListingView, error) {
	proj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	listing := proj.Entity
	ids := []string{listing.SubmittedBy}
	for _, o := range listing.OrderQueue {
		ids = append(ids, o.Buyer)
	}
	for _, o := range listing.OrderHistory {
		ids = append(ids, o.Buyer)
	}
	names, err := s.names.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	view := &types.ListingView{
		Listing:    proj,
		OwnerName:  displayName(names, listing.SubmittedBy),
		BuyerNames: make(map[string]string, len(listing.OrderQueue)+len(listing.OrderHistory)),
	}
	for _, o := range listing.OrderQueue {
		view.BuyerNames[o.ID] = displayName(names, o.Buyer)
	}
	for _, o := range listing.OrderHistory {
		view.BuyerNames[o.ID] = displayName(names, o.Buyer)
	}
	return view, nil
}

// List returns every listing with its owner resolved.
func (s *ListingService) List(ctx context.Context) ([]*types.ListingView, error) {
	projections, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	ids := make([]string, 0, len(projections))
	for _, p := range projections {
		ids = append(ids, p.Entity.SubmittedBy)
	}
	names, err := s.names.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]*types.ListingView, 0, len(projections))
	for _, p := range projections {
		views = append(views, &types.ListingView{
			Listing:   p,
			OwnerName: displayName(names, p.Entity.SubmittedBy),
		})
	}
	return views, nil
}

// Update merges the patch over the stored listing. Renames are not checked
// for uniqueness.
func (s *ListingService) Update(ctx context.Context, input types.UpdateListingInput) (*types.ListingProjection, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	proj, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := proj.Entity.ApplyPatch(input.Patch); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, proj.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes the listing together with its orders and reports.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	proj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	if ids := proj.Entity.QueuedOrderIDs(); len(ids) > 0 {
		if err := s.index.Remove(ctx, ids...); err != nil {
			s.logger.WarnContext(ctx, "order index remove failed",
				slog.String("listing_id", id), slog.Int("orders", len(ids)), slog.String("error", err.Error()))
		}
	}
	return nil
}

var _ ports.ListingService = (*ListingService)(nil)
