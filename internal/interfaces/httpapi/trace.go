package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("fantasy-cricket/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// spanPathParams are copied from the route onto handler spans so traces can be
// searched by match or contest.
var spanPathParams = []string{"matchID", "contestID", "templateID", "participationID"}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// Untraced routes such as /healthz never get standalone root spans.
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

// startHandlerSpan also renames the server span to the matched route so
// requests for different matches aggregate under one name.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	if server := trace.SpanFromContext(r.Context()); server.IsRecording() && r.Pattern != "" {
		server.SetName(r.Pattern)
		server.SetAttributes(attribute.String("http.route", r.Pattern))
	}
	ctx, span := startSpan(r.Context(), name)
	if span.IsRecording() {
		span.SetAttributes(spanAttributes(r)...)
	}
	return ctx, span
}

func spanAttributes(r *http.Request) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(spanPathParams)+1)
	for _, name := range spanPathParams {
		if value := strings.TrimSpace(r.PathValue(name)); value != "" {
			attrs = append(attrs, attribute.String("fantasy."+name, value))
		}
	}
	if principal, ok := principalFromContext(r.Context()); ok && principal.UserID != "" {
		attrs = append(attrs, attribute.String("enduser.id", principal.UserID))
	}
	return attrs
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
