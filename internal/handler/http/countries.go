package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asifrahman/go-identity-api/models"
)

func (h *Handler) listCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.services.Countries.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewResponse("countries found", countries))
}

func (h *Handler) getCountryByCode(w http.ResponseWriter, r *http.Request) {
	country, err := h.services.Countries.FindByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewResponse("country found", country))
}

func (h *Handler) getCountryByCodeISO3(w http.ResponseWriter, r *http.Request) {
	country, err := h.services.Countries.FindByCodeISO3(r.Context(), chi.URLParam(r, "codeIso3"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewResponse("country found", country))
}
