package http

import (
	"github.com/asifrahman/go-identity-api/internal/config"
	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/service"
)

type Handler struct {
	services *service.Services

	// app carries the deployment identity reported by the health endpoint
	// and the expected X-Client-Id value.
	app config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
