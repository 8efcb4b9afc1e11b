package handlers

import "context"

type contextKey string

const userIDKey contextKey = "user_id"

// WithUserID - кладет id аутентифицированного пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext - достает id пользователя, положенный auth-мидлварой
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
