// Package tracing wires OpenTelemetry into the HTTP layer and the use cases.
//
// Spans are always created through the global tracer. When tracing is
// disabled the global provider is the no-op one and spans cost nothing;
// InitProvider installs an SDK provider whose finished spans are written
// to the structured log.
package tracing

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "blogful"

// GetTracer returns the tracer of the currently installed global provider.
// It is looked up per call so a provider swapped in later is honoured.
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartSpan starts an internal span named name with the given attributes.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span (if any) and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// InitProvider installs an SDK tracer provider for serviceName as the global
// provider, sampling a fraction ratio of root traces. Finished spans are
// logged at debug level. The returned func flushes and shuts the provider down.
func InitProvider(serviceName string, ratio float64, logger *slog.Logger) func(context.Context) error {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithSpanProcessor(&logProcessor{logger: logger}),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}

// logProcessor is a span processor that writes ended spans to slog.
type logProcessor struct {
	logger *slog.Logger
}

func (p *logProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	level := slog.LevelDebug
	if s.Status().Code == codes.Error {
		level = slog.LevelWarn
	}
	p.logger.LogAttrs(context.Background(), level, "span finished",
		slog.String("span", s.Name()),
		slog.String("trace_id", s.SpanContext().TraceID().String()),
		slog.String("span_id", s.SpanContext().SpanID().String()),
		slog.Duration("duration", s.EndTime().Sub(s.StartTime())),
		slog.String("status", s.Status().Code.String()),
	)
}

func (p *logProcessor) Shutdown(context.Context) error   { return nil }
func (p *logProcessor) ForceFlush(context.Context) error { return nil }
