package httputil

import (
	"context"
	"net/http"
)

// ctxKey is unexported so no other package can write the same key.
type ctxKey int

const userIDKey ctxKey = iota

// WithUserID returns a request whose context carries the verified owner ID.
// Set by the auth middleware; everything downstream reads it via GetUserID.
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}

// GetUserID returns the owner ID placed by the auth middleware, or "" for a
// request that never passed through it.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
