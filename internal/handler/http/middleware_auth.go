// Package http implements the HTTP transport layer of the API. It provides
// middleware, route handlers, and the uniform response envelope. Client
// identification, authentication, role checks, tracing, and request logging
// are all handled at this layer before requests reach the service layer.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/asifrahman/go-identity-api/internal/service"
	"github.com/asifrahman/go-identity-api/models"
)

type ctxKey string

const identityCtxKey ctxKey = "identity"

// identity is the authenticated caller attached to the request context by
// withAuth: the account, its live session, and the raw bearer token (needed
// by logout to revoke exactly the presented session).
type identity struct {
	user     models.User
	session  models.Session
	rawToken string
}

// identityFromContext returns the authenticated caller stored by withAuth.
func identityFromContext(ctx context.Context) (identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(identity)
	return id, ok
}

// withAuth is the access guard for protected routes. It extracts the bearer
// token from the Authorization header and resolves it through
// [service.AuthService.Identity]: signature and claims, then the server-side
// session, then the account's active flag. On success the caller's identity
// is attached to the request context.
//
// A missing or malformed header is rejected with MISSING_OR_INVALID_TOKEN
// before any verification runs; every later rejection keeps the service
// error's own code.
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			h.writeError(w, r, service.NewError(http.StatusUnauthorized, service.CodeMissingOrInvalidToken, "missing or invalid token"))
			return
		}

		user, session, err := h.services.Auth.Identity(r.Context(), rawToken)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityCtxKey, identity{
			user:     user,
			session:  session,
			rawToken: rawToken,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
