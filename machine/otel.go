package machine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "machine"

// StartTickSpan creates a span covering one Update/Apply tick of a machine.
// Ticks run per frame, so drivers normally only wrap them in spans while
// diagnosing; the span is a no-op under the default global tracer provider.
// The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func StartTickSpan[S, D, I, U, O, W any](ctx context.Context, m *Machine[S, D, I, U, O, W]) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "machine.tick")
	span.SetAttributes(
		attribute.String("machine", m.Def().Name()),
		attribute.String("instance", m.ID()),
		attribute.Int("active_states", len(m.Active())),
	)

	return ctx, span
}

// startLoadSpan creates a span for loading a machine configuration.
// The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startLoadSpan(ctx context.Context, path string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "machine.config.load")
	span.SetAttributes(attribute.String("path", path))

	return ctx, span
}
