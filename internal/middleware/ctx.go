package middleware

import "context"

type ctxKey string

const ContextRole ctxKey = "role"

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ContextRole, role)
}

func RoleFrom(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ContextRole).(string)
	return role, ok
}
