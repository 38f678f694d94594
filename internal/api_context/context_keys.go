package api_context

import (
	"context"
)

type ctxKey string

const IDKey ctxKey = "id"

func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(IDKey).(string)
	return id, ok && id != ""
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, IDKey, id)
}
