package tracing

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false}, noopLogger())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	// Without a tracer installed StartSpan passes the context through
	ctx := context.Background()
	outCtx, _ := StartSpan(ctx, "tracing.test")
	assert.Equal(t, ctx, outCtx)
	assert.Empty(t, GetTraceID(outCtx))
}

func TestInit_ConsoleExporter(t *testing.T) {
	defer SetTracer(nil)

	shutdown, err := Init(context.Background(), Config{
		ServiceName: "laurel-api",
		Version:     "test",
		Enabled:     true,
		Exporter:    "console",
	}, noopLogger())
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	ctx, span := StartSpan(context.Background(), "tracing.test")
	defer span.End()

	assert.True(t, span.SpanContext().IsValid())
	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))
}
