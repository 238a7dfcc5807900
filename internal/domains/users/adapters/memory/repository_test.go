package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/bizrecipe-api/internal/domains/users/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/users/ports"
)

func TestRepository_SaveGetAndList(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, u := range []domain.User{{ID: "u-1", Username: "ana"}, {ID: "u-2", Username: "ben"}} {
		user := u
		_, err := repo.Save(ctx, &user)
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, "u-2")
	require.NoError(t, err)
	require.Equal(t, "ben", got.Username)

	_, err = repo.GetByID(ctx, "u-3")
	require.ErrorIs(t, err, ports.ErrNotFound)

	list, err := repo.ListByIDs(ctx, []string{"u-1", "u-3"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = repo.Save(ctx, &domain.User{ID: "u-3", Username: "ana"})
	require.ErrorIs(t, err, ports.ErrDuplicateUsername)
}
