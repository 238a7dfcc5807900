package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	bizrecipeserver "github.com/Apurer/bizrecipe-api/go"

	listingworkflows "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/workflows"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	platformobservability "github.com/Apurer/bizrecipe-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/bizrecipe-api/internal/platform/temporal"
)

const serviceName = "bizrecipe-api"

// Run boots the HTTP API with observability, repositories, and workflows
// wired, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.WithLogLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	orderWorkflows, closeWorkflows := buildOrderWorkflows(cfg, instruments, services.Orders)
	defer closeWorkflows()

	handlers := bizrecipeserver.ApiHandleFunctions{
		ListingAPI:    bizrecipeserver.NewListingAPI(services.Listings),
		OrderAPI:      bizrecipeserver.NewOrderAPI(services.Orders, orderWorkflows),
		ModerationAPI: bizrecipeserver.NewModerationAPI(services.Moderation),
		UserAPI:       bizrecipeserver.NewUserAPI(services.Users),
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router = bizrecipeserver.NewRouterWithGinEngine(router, handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("bizrecipe API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("bizrecipe API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down bizrecipe API", slog.Duration("timeout", cfg.HTTP.ShutdownTimeout))
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildOrderWorkflows(cfg Config, instruments *platformobservability.Instruments, orders listingports.OrderService) (listingports.WorkflowOrchestrator, func()) {
	logger := instruments.Logger
	inline := listingworkflows.NewInlineOrderWorkflows(orders)
	if cfg.Temporal.Disabled {
		logger.Warn("Temporal disabled via TEMPORAL_DISABLED, submitting orders inline")
		return inline, func() {}
	}
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Tracer:    instruments.Tracer("temporal-client"),
		Logger:    logger,
	})
	if err != nil {
		logger.Warn("Temporal workflows unavailable, submitting orders inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	return listingworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close
}
