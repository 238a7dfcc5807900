//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	"github.com/Apurer/bizrecipe-api/internal/platform/postgres/pgtest"
)

func newListing(t *testing.T, name, price string) *domain.Listing {
	t.Helper()
	l, err := domain.NewListing(uuid.NewString(), name, []string{"rice", "egg"}, []string{"fry"}, 410, "https://img.example/"+name, decimal.RequireFromString(price))
	require.NoError(t, err)
	l.AssignOwner("vendor-1")
	return l
}

func TestRepository_CreateAndGetByID(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	listing := newListing(t, "Fried Rice", "9.50")
	created, err := repo.Create(ctx, listing)
	require.NoError(t, err)
	assert.False(t, created.Metadata.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fried Rice", fetched.Entity.Name)
	assert.Equal(t, []string{"rice", "egg"}, fetched.Entity.Ingredients)
	assert.True(t, fetched.Entity.Price.Equal(decimal.RequireFromString("9.50")))
	assert.Equal(t, "vendor-1", fetched.Entity.SubmittedBy)
	assert.NotNil(t, fetched.Entity.OrderQueue)

	_, err = repo.Create(ctx, newListing(t, "Fried Rice", "1"))
	assert.ErrorIs(t, err, ports.ErrDuplicateName)
}

func TestRepository_SaveRoundTripsEmbeddedDocuments(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	listing := newListing(t, "Laksa", "12")
	_, err := repo.Create(ctx, listing)
	require.NoError(t, err)

	_, err = listing.PlaceOrder(domain.Order{ID: "order-a", Buyer: "buyer-1", Quantity: 2, TotalPrice: decimal.RequireFromString("28"), Status: domain.StatusPlaced})
	require.NoError(t, err)
	_, err = listing.PlaceOrder(domain.Order{ID: "order-b", Buyer: "buyer-2", Quantity: 1, TotalPrice: decimal.RequireFromString("16"), Status: domain.StatusPlaced})
	require.NoError(t, err)
	_, err = listing.TransitionOrder("order-a", "19:00", domain.StatusDone)
	require.NoError(t, err)
	listing.FileReport(domain.Report{User: "buyer-2", Feedback: "cold", ReportedAt: time.Now().UTC()})

	saved, err := repo.Save(ctx, listing)
	require.NoError(t, err)
	require.Len(t, saved.Entity.OrderQueue, 1)
	require.Len(t, saved.Entity.OrderHistory, 1)
	assert.Equal(t, "order-b", saved.Entity.OrderQueue[0].ID)
	assert.Equal(t, domain.StatusDone, saved.Entity.OrderHistory[0].Status)
	assert.True(t, saved.Entity.OrderHistory[0].TotalPrice.Equal(decimal.RequireFromString("28")))
	assert.True(t, saved.Entity.IsReported)

	reported, err := repo.ListReported(ctx)
	require.NoError(t, err)
	require.Len(t, reported, 1)

	owner, err := repo.FindByQueuedOrderID(ctx, "order-b")
	require.NoError(t, err)
	assert.Equal(t, listing.ID, owner.Entity.ID)

	_, err = repo.FindByQueuedOrderID(ctx, "order-a")
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)

	_, err = repo.Save(ctx, newListing(t, "Ghost", "1"))
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListAndDelete(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"Pho", "Bun Cha", "Banh Mi"} {
		l := newListing(t, name, "5")
		_, err := repo.Create(ctx, l)
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	require.NoError(t, repo.Delete(ctx, ids[0]))
	_, err = repo.GetByID(ctx, ids[0])
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ids[0]), ports.ErrNotFound)
}

func TestRepository_MalformedIDIsNotFound(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), ports.ErrNotFound)

	ghost := newListing(t, "Ghost", "1")
	ghost.ID = "not-a-uuid"
	_, err = repo.Save(ctx, ghost)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ConcurrentCreatesKeepNamesUnique(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	const workers = 8
	listings := make([]*domain.Listing, workers)
	for i := range listings {
		listings[i] = newListing(t, "Mee Goreng", "7")
	}
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range listings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, listings[i])
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ports.ErrDuplicateName)
	}
	assert.Equal(t, 1, created)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
