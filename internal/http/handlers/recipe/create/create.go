// Package create реализует HTTP-обработчик для создания новых рецептов.
//
// Handler принимает JSON-запрос с данными рецепта, валидирует их, извлекает uid
// пользователя из контекста, вызывает бизнес-логику создания рецепта через сервис
// и возвращает созданную запись в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/recipe-collection/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-collection/internal/http/response"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
)

// Handler управляет HTTP-запросами на создание новых рецептов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания рецептов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания рецепта.
type Service interface {
	Create(ctx context.Context, req models.DummyRecipe, actingUserUID string) (*models.Recipe, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новый рецепт
// @Description Создает новый рецепт от имени текущего пользователя. Возвращает созданную запись.
// @Tags Recipes
// @Accept  json
// @Produce  json
// @Param request body models.DummyRecipe true "Данные нового рецепта"
// @Success 201 {object} response.Response "Успешное создание рецепта"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "created_by не совпадает с текущим пользователем"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании рецепта"
// @Router /recipes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRecipe
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
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

	recipe, err := h.service.Create(r.Context(), req, userUID)
	if err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			log.Warn("created_by does not match acting user", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
			return
		}
		log.Error("failed to create recipe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create recipe"))
		return
	}

	log.Info("success to create recipe", slog.String("id", recipe.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(recipe))
}
