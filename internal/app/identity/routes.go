package identity

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/taskhive/identity-service/internal/http/handlers/auth/signin"
	"github.com/taskhive/identity-service/internal/http/handlers/auth/signup"
	"github.com/taskhive/identity-service/internal/http/handlers/health"
	"github.com/taskhive/identity-service/internal/http/handlers/verify"
	"github.com/taskhive/identity-service/internal/http/middlewarectx"
	services "github.com/taskhive/identity-service/internal/services/auth"
	"github.com/taskhive/identity-service/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *services.AuthService, db *storage.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/sign-up", signup.New(logger, authService).ServeHTTP)
		r.Post("/sign-in", signin.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Get("/verify", verify.New(logger).ServeHTTP)
		})

		r.Get("/health", health.New(logger, db).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
