package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/recipe-collection/internal/http/response"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context, searchTerm string) ([]*models.RecipeRow, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список рецептов
// @Description Возвращает все рецепты с данными авторов, новые первыми. Параметр search фильтрует по названию.
// @Tags Recipes
// @Produce  json
// @Param search query string false "Подстрока для поиска в названии"
// @Success 200 {object} response.Response "Список рецептов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /recipes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	searchTerm := r.URL.Query().Get("search")

	recipes, err := h.service.List(r.Context(), searchTerm)
	if err != nil {
		log.Error("failed to list recipes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list recipes"))
		return
	}

	log.Info("success to list recipes", slog.Int("count", len(recipes)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipes": recipes,
		"count":   len(recipes),
	}))
}
