package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/service"
	"github.com/asifrahman/go-identity-api/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, service.NewError(http.StatusBadRequest, service.CodeValidationError, "invalid JSON was passed"))
		return
	}

	result, err := h.services.Auth.Authenticate(ctx, req, clientIP(r), r.UserAgent())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("userID", result.User.ID).Msg("user logged in")

	writeJSON(w, http.StatusOK, models.NewResponse("login successful", result))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, service.NewError(http.StatusBadRequest, service.CodeValidationError, "invalid JSON was passed"))
		return
	}

	user, err := h.services.Auth.Register(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("userID", user.ID).Msg("user registered")

	writeJSON(w, http.StatusCreated, models.NewResponse("user registered", user))
}

// logout revokes the session backing the presented token. Revoking an
// already dead session still answers 200.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.NewError(http.StatusUnauthorized, service.CodeUnauthorized, "unauthorized"))
		return
	}

	if err := h.services.Auth.Logout(r.Context(), id.user.ID, id.rawToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewResponse("logout successful", nil))
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the peer
// address without its port.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
