// Package main initializes and starts the staffhub API server, wiring
// configuration, logging, the database, repositories, services,
// handlers, and the token machinery.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/config"
	"github.com/okarpova/staffhub/internal/db"
	"github.com/okarpova/staffhub/internal/logger"
	"github.com/okarpova/staffhub/internal/media"
	"github.com/okarpova/staffhub/internal/repository"
	"github.com/okarpova/staffhub/internal/server/handler/http"
	"github.com/okarpova/staffhub/internal/service"
	"github.com/okarpova/staffhub/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options, err := config.Parse()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		return
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		return
	}
	defer func() { _ = zapLogger.Sync() }()

	// Load the RSA keypair used to sign and verify tokens.
	privateKey, err := token.LoadPrivateKey(options.PrivateKeyPath)
	if err != nil {
		zapLogger.Fatal("cannot load private key", zap.Error(err))
	}
	publicKey, err := token.LoadPublicKey(options.PublicKeyPath)
	if err != nil {
		zapLogger.Fatal("cannot load public key", zap.Error(err))
	}
	codec := token.NewCodec(privateKey, publicKey)
	issuer := token.NewIssuer(codec, options.AccessTokenTTL, options.RefreshTokenTTL)

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(context.Background(), options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Reclaim avatar files left behind by failed uploads.
	db.StartOrphanedAvatarCleaner(context.Background(), postgresDB,
		options.MediaRoot,
		time.Hour, // interval
		zapLogger,
	)

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	subdivisionRepo := repository.NewPostgresSubdivisionRepository(postgresDB)
	projectRepo := repository.NewPostgresProjectRepository(postgresDB)

	// Initialize business-logic services.
	images := media.NewStore(options.MediaRoot, options.BaseURL)
	authService := service.NewAuth(userRepo, codec, issuer)
	userService := service.NewUsers(userRepo, images)
	subdivisionService := service.NewSubdivisions(subdivisionRepo)
	projectService := service.NewProjects(projectRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{Auth: authService, BaseURL: options.BaseURL, Log: zapLogger}
	userHandler := &http.UserHandler{Users: userService, BaseURL: options.BaseURL, Log: zapLogger}
	subdivisionHandler := &http.SubdivisionHandler{Subdivisions: subdivisionService, BaseURL: options.BaseURL, Log: zapLogger}
	projectHandler := &http.ProjectHandler{Projects: projectService, BaseURL: options.BaseURL, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		userHandler,
		subdivisionHandler,
		projectHandler,
		codec,
		userRepo,
		options.PublicRoutes,
		options.AdminRoutes,
		options.MediaRoot,
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
