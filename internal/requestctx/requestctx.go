// Package requestctx carries the per-request correlation id through context.
package requestctx

import "context"

type key int

const requestIDKey key = iota

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
