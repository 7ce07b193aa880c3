package http

import (
	"net/http"

	"github.com/asifrahman/go-identity-api/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewResponse("ok", models.HealthResponse{
		Name:    h.app.Name,
		Version: h.app.Version,
		Mode:    h.app.Mode,
		Status:  "ok",
	}))
}
