//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/bizrecipe-api/internal/domains/users/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/users/ports"
	"github.com/Apurer/bizrecipe-api/internal/platform/postgres/pgtest"
)

func TestRepository_SaveAndGetByID(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	user, err := domain.NewUser("u-1", "alice")
	require.NoError(t, err)
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "alice", saved.Username)

	require.NoError(t, user.SetUsername("alice2"))
	updated, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DuplicateUsername(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	first, err := domain.NewUser("u-1", "bob")
	require.NoError(t, err)
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewUser("u-2", "bob")
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, ports.ErrDuplicateUsername)
}

func TestRepository_ListByIDs(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		user, err := domain.NewUser(fmt.Sprintf("u-%d", i), fmt.Sprintf("user%d", i))
		require.NoError(t, err)
		_, err = repo.Save(ctx, user)
		require.NoError(t, err)
	}

	users, err := repo.ListByIDs(ctx, []string{"u-1", "u-3", "u-9"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
