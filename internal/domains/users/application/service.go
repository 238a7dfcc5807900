package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/bizrecipe-api/internal/domains/users/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateUser registers a user, assigning an id when none is given.
func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := user.SetUsername(user.Username); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// DisplayNames resolves ids to usernames. Unknown ids are left out of the map.
func (s *Service) DisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	users, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}
	return names, nil
}

var _ ports.Service = (*Service)(nil)
