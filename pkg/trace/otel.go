// Package trace wraps go.opentelemetry.io/otel the way teacher pkg/trace
// does, trimmed to what a library needs: starting spans and reading
// trace-context correlators. Exporter and SDK-provider wiring (OTLP
// endpoint, batching, jaeger propagation) stays a peripheral concern of the
// host process, the same way the core leaves the crypto-function registry
// external (SPEC_FULL §2).
package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"vc/pkg/config"
)

// Tracer is a thin wrapper over an otel.Tracer, named the way teacher's
// pkg/trace.Tracer is: one per service/component.
type Tracer struct {
	trace.Tracer
}

// New returns a Tracer bound to name, using whatever TracerProvider the
// host process has already installed via otel.SetTracerProvider (or the
// no-op provider if none was set — spans are then cheap discards).
func New(name string) *Tracer {
	return &Tracer{Tracer: otel.Tracer(name)}
}

// NewDefault returns a Tracer named after config.Current().TracingService
// (VC_TRACING_SERVICE_NAME, "vc" unless overridden) — the tracer
// pkg/computation falls back to when a caller doesn't supply its own.
func NewDefault() *Tracer {
	return New(config.Current().TracingService)
}

// Start begins a span the same way teacher call sites do:
// `ctx, span := tracer.Start(ctx, "name")`, deferring span.End().
func (t *Tracer) Start(ctx context.Context, spanName string) (context.Context, trace.Span) {
	return t.Tracer.Start(ctx, spanName)
}

// CorrelatorsFromContext reads the W3C trace-context correlators (trace id,
// span id) out of ctx's current span, the values DecisionRecord carries
// (spec §3). Both are empty strings if ctx carries no valid span context.
func CorrelatorsFromContext(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}
