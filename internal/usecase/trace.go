package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	serviceTracer   = otel.Tracer("fantasy-league-portal/internal/usecase")
	serviceNoopSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan opens a child span for a portal service call such as
// "usecase.LineupEditorService.Save". Without a request span (the purge job,
// unit tests) it returns a noop span so background work never starts a root trace.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !strings.HasPrefix(name, "usecase.") {
		return ctx, serviceNoopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, serviceNoopSpan
	}
	return serviceTracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}
