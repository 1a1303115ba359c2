// Package recipecollection предоставляет маршруты для основного приложения.
package recipecollection

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/recipe-collection/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/recipe-collection/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/recipe-collection/internal/http/handlers/recipe/create"
	"github.com/magabrotheeeer/recipe-collection/internal/http/handlers/recipe/health"
	"github.com/magabrotheeeer/recipe-collection/internal/http/handlers/recipe/list"
	"github.com/magabrotheeeer/recipe-collection/internal/http/handlers/recipe/read"
	"github.com/magabrotheeeer/recipe-collection/internal/http/handlers/recipe/update"
	"github.com/magabrotheeeer/recipe-collection/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/recipe-collection/internal/services/auth"
	recipeservice "github.com/magabrotheeeer/recipe-collection/internal/services/recipe"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Чтение и список рецептов открыты без аутентификации, изменяющие
// маршруты защищены JWT middleware; ответ на отсутствие токена —
// всегда 401 JSON, без редиректов.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, recipeService *recipeservice.RecipeService, tokenParser middlewarectx.TokenParser) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/recipes", list.New(logger, recipeService).ServeHTTP)
		r.Get("/recipes/{id}", read.New(logger, recipeService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/recipes", create.New(logger, recipeService).ServeHTTP)
			r.Put("/recipes/{id}", update.New(logger, recipeService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
