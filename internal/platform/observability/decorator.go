package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Decorator holds the telemetry handles a service decorator reports through.
// The zero options give a no-op tracer, a discarding logger and no metrics.
type Decorator struct {
	tracer trace.Tracer
	logger *slog.Logger
	meter  metric.Meter
}

// DecoratorOption configures a Decorator.
type DecoratorOption func(*Decorator)

func WithLogger(logger *slog.Logger) DecoratorOption {
	return func(d *Decorator) { d.logger = logger }
}

func WithTracer(tr trace.Tracer) DecoratorOption {
	return func(d *Decorator) { d.tracer = tr }
}

func WithMeter(m metric.Meter) DecoratorOption {
	return func(d *Decorator) { d.meter = m }
}

// NewDecorator applies opts. scope names the fallback no-op tracer.
func NewDecorator(scope string, opts ...DecoratorOption) Decorator {
	var d Decorator
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	if d.tracer == nil {
		d.tracer = nooptrace.NewTracerProvider().Tracer(scope)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// Start opens a span named after the decorated operation.
func (d Decorator) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if len(attrs) == 0 {
		return d.tracer.Start(ctx, name)
	}
	return d.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Fail marks span as failed, logs msg at error level and returns err.
func (d Decorator) Fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	d.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

// Info logs a successful state change.
func (d Decorator) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	d.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Counter registers a monotonic counter. Without a meter it counts nothing.
func (d Decorator) Counter(name, description string) Counter {
	if d.meter == nil {
		return Counter{}
	}
	c, err := d.meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		d.logger.Warn("counter registration failed", slog.String("counter", name), slog.String("error", err.Error()))
		return Counter{}
	}
	return Counter{inner: c}
}

// Counter is a nil-safe int64 counter.
type Counter struct {
	inner metric.Int64Counter
}

// Inc adds one, tagged with attrs.
func (c Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	if c.inner == nil {
		return
	}
	if len(attrs) == 0 {
		c.inner.Add(ctx, 1)
		return
	}
	c.inner.Add(ctx, 1, metric.WithAttributes(attrs...))
}
