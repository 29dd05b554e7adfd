package entity

import "context"

type tokenKey struct{}

func WithToken(ctx context.Context, token TokenInfo) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) (TokenInfo, bool) {
	token, ok := ctx.Value(tokenKey{}).(TokenInfo)
	return token, ok
}
