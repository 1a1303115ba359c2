package login

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	args := m.Called(ctx, email, rawPassword)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	name := "Alice"
	userWithName := &models.User{
		UID:   "uid-1",
		Email: "alice@example.com",
		Name:  &name,
	}
	userWithoutName := &models.User{
		UID:   "uid-2",
		Email: "bob@example.com",
	}

	tests := []struct {
		name           string
		requestBody    string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешный вход",
			requestBody: `{"email": "alice@example.com", "password": "password123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "password123").
					Return("signed-token", userWithName, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"signed-token"`,
		},
		{
			name:        "имя берётся из профиля",
			requestBody: `{"email": "alice@example.com", "password": "password123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "password123").
					Return("signed-token", userWithName, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Alice"`,
		},
		{
			name:        "без имени вместо него email",
			requestBody: `{"email": "bob@example.com", "password": "password123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "bob@example.com", "password123").
					Return("signed-token", userWithoutName, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"bob@example.com"`,
		},
		{
			name:        "неверные учетные данные",
			requestBody: `{"email": "alice@example.com", "password": "wrongpassword"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "wrongpassword").
					Return("", nil, apperr.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid credentials",
		},
		{
			name:           "невалидный JSON",
			requestBody:    `{"email": }`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "отсутствует пароль",
			requestBody:    `{"email": "alice@example.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Password is a required field",
		},
		{
			name:        "внутренняя ошибка сервиса",
			requestBody: `{"email": "alice@example.com", "password": "password123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "password123").
					Return("", nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
