// Package reqctx carries per-request values through context.Context.
package reqctx

import "context"

type key int

const (
	keyRequestID key = iota
	keyOperator
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRequestID).(string)
	return v, ok
}

// WithOperator stores the authenticated operator name.
func WithOperator(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOperator, name)
}

func GetOperator(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyOperator).(string)
	return v, ok
}
