package http

import (
	"net/http"

	"github.com/asifrahman/go-identity-api/internal/service"
)

// withRoles allows the request through when the authenticated user holds at
// least one of the named roles. Must be mounted after withAuth. Role grants
// are re-read from the store on every request so a revoked role locks the
// user out before the session expires.
func (h *Handler) withRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identityFromContext(r.Context())
			if !ok {
				h.writeError(w, r, service.NewError(http.StatusUnauthorized, service.CodeUnauthorized, "unauthorized"))
				return
			}

			user := id.user
			current, err := h.services.Users.FindRolesByUserID(r.Context(), user.ID)
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			user.Roles = current

			for _, role := range roles {
				if user.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			h.writeError(w, r, service.NewError(http.StatusUnauthorized, service.CodeUnauthorized, "unauthorized"))
		})
	}
}
