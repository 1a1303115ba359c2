// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Регистрация открыта только для email из настроенного списка разрешённых;
// проверка списка и занятости email выполняется сервисом бизнес-логики.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/recipe-collection/internal/http/response"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/sl"
)

// Request — входные данные для регистрации
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, rawPassword, name string) (string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учетную запись для email из списка разрешённых.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные новой учетной записи"
// @Success 201 {object} response.Response "Учетная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или email уже занят"
// @Failure 403 {object} response.ErrorResponse "Email не входит в список разрешённых"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	_, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrEmailNotAllowed):
			log.Warn("email is not allow-listed", slog.String("email", req.Email))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("this email is not authorized to create an account"))
		case errors.Is(err, apperr.ErrEmailTaken):
			log.Warn("email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("email already registered"))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create account"))
		}
		return
	}

	log.Info("user registered", slog.String("email", req.Email))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "account created successfully",
	}))
}
