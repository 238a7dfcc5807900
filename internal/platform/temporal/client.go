package temporal

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// Options configures the Temporal client connection.
type Options struct {
	Address   string
	Namespace string
	Tracer    trace.Tracer
	Logger    *slog.Logger
}

// Dial connects to Temporal with the OpenTelemetry tracing interceptor and
// the structured slog adapter installed.
func Dial(opts Options) (client.Client, error) {
	if opts.Address == "" {
		opts.Address = client.DefaultHostPort
	}
	if opts.Namespace == "" {
		opts.Namespace = client.DefaultNamespace
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: opts.Tracer})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  opts.Address,
		Namespace: opts.Namespace,
	}
	if opts.Logger != nil {
		options.Logger = workerlog.NewStructuredLogger(opts.Logger)
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
