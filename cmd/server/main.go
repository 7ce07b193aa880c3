package main

import (
	"context"
	"fmt"

	"github.com/asifrahman/go-identity-api/internal/config"
	myHTTP "github.com/asifrahman/go-identity-api/internal/handler/http"
	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/server"
	"github.com/asifrahman/go-identity-api/internal/service"
	"github.com/asifrahman/go-identity-api/internal/storage"
	"github.com/asifrahman/go-identity-api/internal/store"
	"github.com/asifrahman/go-identity-api/internal/token"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("identity-api-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	blobs, err := storage.NewBlobStorage(ctx, cfg.Storage.Blob)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob storage")
	}

	tokens, err := token.NewIssuer(cfg.Auth.TokenSignKey, cfg.Auth.TokenIssuer, cfg.Auth.TokenAudience, cfg.Auth.TokenDuration)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token issuer")
	}

	services := service.NewServices(storages, blobs, tokens, *cfg, log)
	handler := myHTTP.NewHandler(services, cfg.App, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
