package event

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTel converts every event into one OpenTelemetry span.
//
// Each span is named after the event type and carries the run id, the path
// length, and the total cost as attributes. Search failures set the span
// status to Error so trace backends surface them. Spans represent points in
// time and are ended immediately.
type OTel struct {
	tracer trace.Tracer
}

// NewOTelEmitter wraps a tracer, typically otel.Tracer("routeboard").
func NewOTelEmitter(tracer trace.Tracer) *OTel {
	return &OTel{tracer: tracer}
}

// Emit records the event as a span.
func (o *OTel) Emit(e Event) {
	_, span := o.tracer.Start(context.Background(), string(e.Type))
	defer span.End()

	span.SetAttributes(
		attribute.String("routeboard.run_id", e.RunID),
		attribute.Int("routeboard.path_len", len(e.Path)),
		attribute.Int64("routeboard.total_cost", e.Cost),
	)

	if e.Type.Failure() {
		span.SetStatus(codes.Error, string(e.Type))
		span.RecordError(fmt.Errorf("search failed: %s", e.Type))
	}
}

// Flush forces export of pending spans through the global tracer provider,
// when it supports flushing. Call before shutdown so short-lived processes
// do not lose their tail of spans.
func (o *OTel) Flush(ctx context.Context) error {
	type flusher interface {
		ForceFlush(context.Context) error
	}
	if f, ok := otel.GetTracerProvider().(flusher); ok {
		return f.ForceFlush(ctx)
	}

	return nil
}
