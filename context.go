package steamlogin

import "context"

type traceIDContextKey struct{}

// WithTraceID attaches a caller correlation identifier to ctx. Events emitted
// while the ctx is in effect carry the identifier in their metadata, which
// makes it possible to line up library events with the caller's own logs.
//
//	Docs: docs/events.md
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDContextKey{}, traceID)
}

func traceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	traceID, _ := ctx.Value(traceIDContextKey{}).(string)
	return traceID
}
