package ports

import (
	"context"
	"errors"

	"github.com/Apurer/bizrecipe-api/internal/domains/users/domain"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// ListByIDs returns the users that exist among ids; unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
}
