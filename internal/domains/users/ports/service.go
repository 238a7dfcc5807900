package ports

import (
	"context"

	"github.com/Apurer/bizrecipe-api/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	DisplayNames(ctx context.Context, ids []string) (map[string]string, error)
}
