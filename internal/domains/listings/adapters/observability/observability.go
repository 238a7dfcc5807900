// Package observability decorates the listings services with tracing,
// logging and metrics.
package observability

const tracerName = "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/observability"
