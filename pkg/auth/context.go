package auth

import (
	"context"
	"errors"
)

type contextKey string

const userContextKey contextKey = "user_context"

// ErrNoUserInContext is returned when no authenticated user is attached to the context
var ErrNoUserInContext = errors.New("no user in context")

// UserContext carries the authenticated user's identity through a request
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

// SetUserInContext attaches the user context to the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user context; fails for anonymous requests
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}

// UserIDFromContext returns the authenticated user id, or "" for anonymous requests
func UserIDFromContext(ctx context.Context) string {
	user, err := GetUserFromContext(ctx)
	if err != nil {
		return ""
	}
	return user.UserID
}
