package utils

import (
	"context"
)

type contextKey string

const (
	ContextPrincipalKey contextKey = "principal"
	ContextLocaleKey    contextKey = "locale"
)

// Principal identifies the authenticated admin attached to a request.
type Principal struct {
	UserID string
	Email  string
}

func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ContextPrincipalKey).(Principal)
	return p, ok
}

func GetLocaleFromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(ContextLocaleKey).(string)
	return locale, ok
}
