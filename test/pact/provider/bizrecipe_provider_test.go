//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/bizrecipe-api/test/pact"

	bizrecipeserver "github.com/Apurer/bizrecipe-api/go"
	listingmemory "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/memory"
	listingobs "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/observability"
	listingworkflows "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/workflows"
	listingapp "github.com/Apurer/bizrecipe-api/internal/domains/listings/application"
	listingdomain "github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	usermemory "github.com/Apurer/bizrecipe-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/bizrecipe-api/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/bizrecipe-api/internal/domains/users/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBizrecipeProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateListingsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			return nil, nil
		},
		pacttest.StateListingExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			if setup {
				app.seedListing(t, pacttest.ExistingListingID)
			}
			return nil, nil
		},
		pacttest.StateListingMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetListings(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *listingmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := listingmemory.NewRepository()
	index := listingmemory.NewOrderIndex()
	users := userobs.New(userapp.NewService(usermemory.NewRepository()))
	pricing, err := listingdomain.NewPricingPolicy(listingdomain.DefaultServiceFee)
	require.NoError(t, err)

	orders := listingobs.NewOrderService(listingapp.NewOrderService(repo, index, users, pricing))
	handlers := bizrecipeserver.ApiHandleFunctions{
		ListingAPI:    bizrecipeserver.NewListingAPI(listingobs.NewListingService(listingapp.NewListingService(repo, index, users))),
		OrderAPI:      bizrecipeserver.NewOrderAPI(orders, listingworkflows.NewInlineOrderWorkflows(orders)),
		ModerationAPI: bizrecipeserver.NewModerationAPI(listingobs.NewModerationService(listingapp.NewModerationService(repo, users))),
		UserAPI:       bizrecipeserver.NewUserAPI(users),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = bizrecipeserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

func (a *contractProviderApp) resetListings(t testing.TB) {
	t.Helper()
	listings, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, projection := range listings {
		_ = a.repo.Delete(context.Background(), projection.Entity.ID)
	}
}

func (a *contractProviderApp) seedListing(t testing.TB, id string) {
	t.Helper()
	listing, err := listingdomain.NewListing(
		id,
		pacttest.ExampleListingName,
		[]string{"noodles", "coconut milk"},
		[]string{"simmer", "serve"},
		640,
		"https://example.pact/listings/laksa.png",
		decimal.RequireFromString("10.00"),
	)
	require.NoError(t, err)
	listing.AssignOwner(pacttest.ExampleVendorID)
	_, err = a.repo.Create(context.Background(), listing)
	require.NoError(t, err)
}
