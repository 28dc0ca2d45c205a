package logging

import "context"

type ctxKey struct{}

// RequestIDKey is the attribute name under which the request id is logged.
const RequestIDKey = "request_id"

// ContextWithRequestID returns a copy of ctx carrying id. Loggers add it to
// every record written with that context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := RequestIDFromContext(ctx); id != "" {
		return append(args, RequestIDKey, id)
	}
	return args
}
