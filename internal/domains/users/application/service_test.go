package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/bizrecipe-api/internal/domains/users/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/users/ports"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	for id, existing := range f.users {
		if existing.Username == user.Username && id != user.ID {
			return nil, ports.ErrDuplicateUsername
		}
	}
	copy := *user
	f.users[user.ID] = &copy
	return &copy, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var list []*domain.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			copy := *u
			list = append(list, &copy)
		}
	}
	return list, nil
}

func TestCreateUser_AssignsID(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	created, err := svc.CreateUser(context.Background(), &domain.User{Username: "  alice "})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice", created.Username)

	fetched, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
}

func TestCreateUser_Invalid(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), &domain.User{ID: "u-1"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyUsername)

	_, err = svc.CreateUser(context.Background(), nil)
	require.Error(t, err)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	_, err := svc.CreateUser(context.Background(), &domain.User{ID: "u-1", Username: "bob"})
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), &domain.User{ID: "u-2", Username: "bob"})
	require.ErrorIs(t, err, ports.ErrDuplicateUsername)
}

func TestDisplayNames_SkipsUnknown(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	_, err := svc.CreateUser(context.Background(), &domain.User{ID: "u-1", Username: "bob"})
	require.NoError(t, err)

	names, err := svc.DisplayNames(context.Background(), []string{"u-1", "u-missing"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"u-1": "bob"}, names)
}
