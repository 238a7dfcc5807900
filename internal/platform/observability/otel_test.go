package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitHonoursLogLevelAndCorrelatesTraces(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var out bytes.Buffer
	exporter := tracetest.NewInMemoryExporter()
	instruments, shutdown, err := Init(t.Context(), "bizrecipe-test",
		WithLogLevel(slog.LevelWarn),
		WithLogOutput(&out),
		WithEnvironment("test"),
		WithSpanExporter(exporter),
	)
	require.NoError(t, err)

	ctx, span := instruments.Tracer("test").Start(t.Context(), "op")
	instruments.Logger.InfoContext(ctx, "dropped")
	instruments.Logger.WarnContext(ctx, "kept")
	span.End()
	tp, ok := instruments.TracerProvider.(*sdktrace.TracerProvider)
	require.True(t, ok)
	require.NoError(t, tp.ForceFlush(t.Context()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "bizrecipe-test", record["service"])
	assert.Equal(t, span.SpanContext().TraceID().String(), record["trace_id"])

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "op", spans[0].Name)
	assert.NotNil(t, instruments.MetricReader)
	require.NoError(t, shutdown(t.Context()))
}

func TestNilInstrumentsFallBack(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("x"))
	assert.NotNil(t, instruments.Meter("x"))
	assert.Equal(t, slog.Default(), instruments.Log())
}
