package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/chepyr/task-tracker-api/internal/auth"
	"github.com/chepyr/task-tracker-api/internal/logging"
)

type identityKey struct{}

func withIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller set by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok && id.UserID > 0
}

/*
Verify the bearer token and put the caller identity into the request context.
Requests without a valid token never reach next.
*/
func (h *Handler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			sendError(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			sendError(w, "Authorization header must be a bearer token", http.StatusUnauthorized)
			return
		}
		identity, err := h.Tokens.Verify(tokenString)
		if err != nil {
			logging.FromContext(r.Context()).WithError(err).Debug("token rejected")
			sendError(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(withIdentity(r.Context(), identity)))
	}
}

// caller writes a 401 and returns false when the request has no identity.
func caller(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
	}
	return id, ok
}
