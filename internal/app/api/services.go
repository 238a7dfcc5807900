package api

import (
	"context"
	"fmt"
	"log/slog"

	listingredis "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/cache/redis"
	listingmemory "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/memory"
	listingobs "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/observability"
	listingpostgres "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/persistence/postgres"
	listingapp "github.com/Apurer/bizrecipe-api/internal/domains/listings/application"
	listingdomain "github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	usermemory "github.com/Apurer/bizrecipe-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/bizrecipe-api/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/bizrecipe-api/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/bizrecipe-api/internal/domains/users/application"
	userports "github.com/Apurer/bizrecipe-api/internal/domains/users/ports"
	"github.com/Apurer/bizrecipe-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/bizrecipe-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/bizrecipe-api/internal/platform/postgres"
	platformredis "github.com/Apurer/bizrecipe-api/internal/platform/redis"
)

// Services holds the decorated use cases shared by the API and the worker.
type Services struct {
	Listings   listingports.ListingService
	Orders     listingports.OrderService
	Moderation listingports.ModerationService
	Users      userports.Service
}

type repositories struct {
	listings listingports.Repository
	users    userports.Repository
	index    listingports.OrderIndex
}

// BuildServices connects the configured backing stores, falling back to
// in-memory adapters when Postgres or Redis are unavailable, and wraps every
// service in its observability decorator. The returned cleanup closes the
// connections.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := instruments.Logger
	pricing, err := listingdomain.NewPricingPolicy(cfg.ServiceFee)
	if err != nil {
		return nil, nil, fmt.Errorf("pricing policy: %w", err)
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	users := userobs.New(userapp.NewService(repos.users), decoratorOptions(instruments, "internal.users.application")...)
	opts := decoratorOptions(instruments, "internal.listings.application")
	services := &Services{
		Listings:   listingobs.NewListingService(listingapp.NewListingService(repos.listings, repos.index, users, listingapp.WithLogger(logger)), opts...),
		Orders:     listingobs.NewOrderService(listingapp.NewOrderService(repos.listings, repos.index, users, pricing, listingapp.WithLogger(logger)), opts...),
		Moderation: listingobs.NewModerationService(listingapp.NewModerationService(repos.listings, users), opts...),
		Users:      users,
	}
	logger.Info("services configured", slog.String("serviceFee", pricing.ServiceFee().StringFixed(2)))
	return services, cleanup, nil
}

func decoratorOptions(instruments *platformobservability.Instruments, scope string) []platformobservability.DecoratorOption {
	return []platformobservability.DecoratorOption{
		platformobservability.WithLogger(instruments.Log()),
		platformobservability.WithTracer(instruments.Tracer(scope)),
		platformobservability.WithMeter(instruments.Meter(scope)),
	}
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func(), error) {
	repos := repositories{
		listings: listingmemory.NewRepository(),
		users:    usermemory.NewRepository(),
		index:    listingmemory.NewOrderIndex(),
	}
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.Postgres.ConnOptions(logger))
	cleanups = append(cleanups, closeDB)
	if db != nil {
		if err := migrations.Run(db.WithContext(ctx)); err != nil {
			cleanup()
			return repositories{}, nil, fmt.Errorf("apply migrations: %w", err)
		}
		repos.listings = listingpostgres.NewRepository(db)
		repos.users = userpostgres.NewRepository(db)
		logger.Info("repositories configured with postgres")
	}

	rdb, closeRedis := platformredis.ConnectOptional(ctx, cfg.Redis.Addr, logger)
	cleanups = append(cleanups, closeRedis)
	if rdb != nil {
		repos.index = listingredis.NewOrderIndex(rdb)
		logger.Info("order index configured with redis")
	}
	return repos, cleanup, nil
}
