package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	portalTracer   = otel.Tracer("fantasy-league-portal/internal/interfaces/httpapi")
	portalNoopSpan = trace.SpanFromContext(context.Background())
)

// startSpan only traces portal handlers, and only under the otelhttp request
// span; /healthz and helpers stay untraced.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, portalNoopSpan
	}
	return portalTracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
