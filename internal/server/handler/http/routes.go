package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/middleware"
	"github.com/okarpova/staffhub/internal/token"
)

// NewRouter constructs the HTTP handler serving the staffhub API under
// /api/v1.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs each request
//  3. Authenticate                         — token verification and
//     identity resolution, skipping the configured public routes
//  4. RequireAdmin                         — admin gating for the
//     configured admin routes, always after authentication
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	subdivisionHandler *SubdivisionHandler,
	projectHandler *ProjectHandler,
	codec *token.Codec,
	statuses middleware.StatusProvider,
	publicRoutes, adminRoutes []string,
	mediaRoot string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.Authenticate(codec, statuses, publicRoutes, logger))
	r.Use(middleware.RequireAdmin(adminRoutes, logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", Healthcheck)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Get("/departments", ListDepartments)

		// Uploaded avatars; the default config lists this path as
		// public so image links work without a bearer token.
		r.Handle("/media/*", http.StripPrefix("/api/v1/media/",
			http.FileServer(http.Dir(mediaRoot))))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{username}", userHandler.Get)
			r.Put("/{username}", userHandler.Update)
			r.Delete("/{username}", userHandler.Delete)
			r.Put("/{username}/password", userHandler.ChangePassword)
		})

		r.Route("/subdivisions", func(r chi.Router) {
			r.Get("/", subdivisionHandler.List)
			r.Post("/", subdivisionHandler.Create)

			r.Route("/{subdivisionID}", func(r chi.Router) {
				r.Get("/", subdivisionHandler.Get)
				r.Put("/", subdivisionHandler.Update)
				r.Delete("/", subdivisionHandler.Delete)

				r.Post("/employees", subdivisionHandler.AttachEmployee)
				r.Delete("/employees/{username}", subdivisionHandler.DetachEmployee)

				r.Route("/projects", func(r chi.Router) {
					r.Get("/", projectHandler.List)
					r.Post("/", projectHandler.Create)
					r.Get("/{projectID}", projectHandler.Get)
					r.Put("/{projectID}", projectHandler.Update)
					r.Delete("/{projectID}", projectHandler.Delete)
				})
			})
		})
	})

	return r
}
