package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/asifrahman/go-identity-api/internal/service"
)

const clientIDHeader = "X-Client-Id"

// withClientID rejects requests whose X-Client-Id header does not match the
// configured client identifier. The comparison is constant-time.
func (h *Handler) withClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(clientIDHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.app.ClientID)) != 1 {
			h.writeError(w, r, service.NewError(http.StatusUnauthorized, service.CodeUnauthorized, "unauthorized"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
