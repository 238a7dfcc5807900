package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	userdomain "github.com/Apurer/bizrecipe-api/internal/domains/users/domain"
	userports "github.com/Apurer/bizrecipe-api/internal/domains/users/ports"
	platformobs "github.com/Apurer/bizrecipe-api/internal/platform/observability"
)

const tracerName = "github.com/Apurer/bizrecipe-api/internal/domains/users/adapters/observability"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	platformobs.Decorator
	inner   userports.Service
	created platformobs.Counter
	lookups platformobs.Counter
}

// New wraps the core user service.
func New(inner userports.Service, opts ...platformobs.DecoratorOption) userports.Service {
	d := platformobs.NewDecorator(tracerName, opts...)
	return &Service{
		Decorator: d,
		inner:     inner,
		created:   d.Counter("users.service.created", "Number of users created"),
		lookups:   d.Counter("users.service.display_name_lookups", "Number of batched display name lookups"),
	}
}

func (s *Service) CreateUser(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	ctx, span := s.Start(ctx, "UserService.CreateUser")
	defer span.End()
	if user != nil {
		span.SetAttributes(attribute.String("user.username", user.Username))
	}
	result, err := s.inner.CreateUser(ctx, user)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to create user")
	}
	s.created.Inc(ctx)
	s.Info(ctx, "user created", slog.String("user_id", result.ID), slog.String("username", result.Username))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	ctx, span := s.Start(ctx, "UserService.GetByID", attribute.String("user.id", id))
	defer span.End()
	return s.inner.GetByID(ctx, id)
}

// DisplayNames backs owner, buyer and reporter name resolution for listings.
func (s *Service) DisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	ctx, span := s.Start(ctx, "UserService.DisplayNames", attribute.Int("user.lookup.count", len(ids)))
	defer span.End()
	names, err := s.inner.DisplayNames(ctx, ids)
	if err != nil {
		return nil, s.Fail(ctx, span, err, "failed to resolve display names")
	}
	s.lookups.Inc(ctx)
	span.SetAttributes(attribute.Int("user.lookup.resolved", len(names)))
	return names, nil
}

var _ userports.Service = (*Service)(nil)
