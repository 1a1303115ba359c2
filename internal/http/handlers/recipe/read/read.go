// Package read реализует HTTP-обработчик для просмотра рецепта.
//
// К рецепту добавляются отображаемые данные автора и текстовые списки:
// ингредиенты и шаги разбиваются по строкам, пустые строки отбрасываются,
// шаги нумеруются с единицы на стороне клиента.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/recipe-collection/internal/http/response"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/textlist"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Get(ctx context.Context, id string) (*models.RecipeRow, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить рецепт
// @Description Возвращает рецепт с данными автора и разобранными списками ингредиентов и шагов.
// @Tags Recipes
// @Produce  json
// @Param id path string true "ID рецепта"
// @Success 200 {object} response.Response "Рецепт"
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /recipes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	recipe, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			log.Warn("recipe not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("recipe not found"))
			return
		}
		log.Error("failed to read recipe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read recipe"))
		return
	}

	var ingredientsText string
	if recipe.IngredientsText != nil {
		ingredientsText = *recipe.IngredientsText
	}

	log.Info("success to read recipe", slog.String("id", recipe.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipe":       recipe,
		"author":       recipe.AuthorDisplay(),
		"ingredients":  textlist.Split(ingredientsText),
		"instructions": textlist.Split(recipe.InstructionsText),
	}))
}
