package auth

import "context"

// SetUserIDForTest puts a user id into the context the same way Middleware
// does, so handler tests can skip the token exchange.
func SetUserIDForTest(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
