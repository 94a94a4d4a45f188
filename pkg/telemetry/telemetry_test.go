package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otrace "go.opentelemetry.io/otel/trace"

	"github.com/nais/sentry-deploy/pkg/telemetry"
)

const traceParent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func TestTraceParent(t *testing.T) {
	t.Run("remote parent is extracted", func(t *testing.T) {
		ctx := telemetry.WithTraceParent(context.Background(), traceParent)
		sc := otrace.SpanContextFromContext(ctx)
		assert.True(t, sc.IsRemote())
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", sc.TraceID().String())
		assert.Equal(t, traceParent, telemetry.TraceParentHeader(ctx))
	})

	t.Run("empty traceparent leaves context alone", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, telemetry.WithTraceParent(ctx, ""))
		assert.Empty(t, telemetry.TraceParentHeader(ctx))
	})

	t.Run("malformed traceparent is ignored", func(t *testing.T) {
		ctx := telemetry.WithTraceParent(context.Background(), "not-a-trace")
		assert.False(t, otrace.SpanContextFromContext(ctx).IsValid())
	})
}

func TestNewWithoutCollector(t *testing.T) {
	ctx := context.Background()
	tp, err := telemetry.New(ctx, "test", "")
	require.NoError(t, err)
	defer tp.Shutdown(ctx)

	ctx = telemetry.WithTraceParent(ctx, traceParent)
	ctx, span := telemetry.Tracer().Start(ctx, "test span")
	defer span.End()

	assert.True(t, span.IsRecording())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", telemetry.TraceID(ctx))
}
