package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/recipe-collection/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-collection/internal/http/response"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Update(ctx context.Context, id string, req models.DummyRecipeUpdate, actingUserUID string) (*models.Recipe, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить рецепт
// @Description Перезаписывает изменяемые поля рецепта. Доступно только владельцу.
// @Tags Recipes
// @Accept  json
// @Produce  json
// @Param id path string true "ID рецепта"
// @Param request body models.DummyRecipeUpdate true "Новые данные рецепта"
// @Success 200 {object} response.Response "Обновленная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не владеет рецептом"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при обновлении рецепта"
// @Router /recipes/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRecipeUpdate
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	recipe, err := h.service.Update(r.Context(), id, req, userUID)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			log.Warn("recipe not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("recipe not found"))
		case errors.Is(err, apperr.ErrForbidden):
			log.Warn("user is not the owner", slog.String("id", id), slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
		default:
			log.Error("failed to update recipe", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update recipe"))
		}
		return
	}

	log.Info("success to update recipe", slog.String("id", recipe.ID))
	render.JSON(w, r, response.StatusOKWithData(recipe))
}
