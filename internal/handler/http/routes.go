package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/asifrahman/go-identity-api/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes open to anyone
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)

		r.Get("/api/health", h.health)
	})

	// routes requiring the client id but no user
	router.Group(func(r chi.Router) {
		r.Use(h.withClientID)

		r.Get("/api/countries", h.listCountries)
		r.Get("/api/countries/code/{code}", h.getCountryByCode)
		r.Get("/api/countries/code-iso3/{codeIso3}", h.getCountryByCodeISO3)
	})

	// routes behind the access guard
	router.Group(func(r chi.Router) {
		r.Use(h.withClientID)
		r.Use(h.withAuth)

		r.Post("/api/auth/logout", h.logout)

		r.Get("/api/users/me", h.me)
		r.With(h.withRoles(models.RoleAdministrator, models.RoleTeacher)).
			Get("/api/users/{email}", h.getUserByEmail)
		r.Post("/api/users", h.createUser)
		r.Put("/api/users", h.updatePassword)
	})

	return router
}
