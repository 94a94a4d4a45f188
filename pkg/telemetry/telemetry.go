// Functions for working with OpenTelemetry in sentry-deploy.

package telemetry

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	otrace "go.opentelemetry.io/otel/trace"

	"github.com/nais/sentry-deploy/pkg/version"
)

// How long between each time OT sends something to the collector.
const batchTimeout = 5 * time.Second

const traceParentKey = "traceparent"

// Singleton instance of the default tracer.
// Access it with `Tracer()`.
var tracer *trace.TracerProvider

// Initialize the OpenTelemetry library.
//
// Spans are only exported when collectorEndpointURL is non-empty.
// You MUST call `Shutdown()` on the tracer provider before exiting,
// lest traces are not sent to the collector.
func New(ctx context.Context, serviceName string, collectorEndpointURL string) (*trace.TracerProvider, error) {
	prop := newPropagator()
	otel.SetTextMapPropagator(prop)

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.OSName(runtime.GOOS),
		semconv.ServiceVersion(version.Version()),
	)

	tracerProvider, err := newTraceProvider(ctx, res, collectorEndpointURL)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tracerProvider)

	tracer = tracerProvider

	return tracerProvider, nil
}

// Returns the top-level tracer.
//
// Before `New()` has been called, spans go to the global no-op provider.
func Tracer() otrace.Tracer {
	if tracer == nil {
		return otel.GetTracerProvider().Tracer("")
	}
	return tracer.Tracer("")
}

// WithTraceParent returns a context whose remote parent is the given W3C traceparent value.
// Used to attach our spans to the CI workflow trace.
func WithTraceParent(ctx context.Context, traceParent string) context.Context {
	if len(traceParent) == 0 {
		return ctx
	}
	carrier := propagation.MapCarrier{traceParentKey: traceParent}
	return newPropagator().Extract(ctx, carrier)
}

// TraceParentHeader returns the W3C traceparent value of the span in ctx.
func TraceParentHeader(ctx context.Context) string {
	carrier := propagation.MapCarrier{}
	newPropagator().Inject(ctx, carrier)
	return carrier[traceParentKey]
}

func TraceID(ctx context.Context) string {
	return otrace.SpanFromContext(ctx).SpanContext().TraceID().String()
}

func AddRequestSpanAttributes(span otrace.Span, release, environment string) {
	span.SetAttributes(
		attribute.String("sentry.release", release),
		attribute.String("deployment.environment", environment),
	)
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

func newTraceProvider(ctx context.Context, res *resource.Resource, endpointURL string) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
	}

	if len(endpointURL) > 0 {
		traceExporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpointURL))
		if err != nil {
			return nil, err
		}
		opts = append(opts, trace.WithBatcher(traceExporter, trace.WithBatchTimeout(batchTimeout)))
	}

	return trace.NewTracerProvider(opts...), nil
}
