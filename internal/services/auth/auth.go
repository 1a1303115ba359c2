// Package services содержит логику бизнес-уровня для регистрации и аутентификации пользователей.
package services

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/jwt"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/password"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// SaveUser сохраняет нового пользователя и возвращает его UID.
	SaveUser(ctx context.Context, user models.User) (string, error)

	// UserByEmail возвращает пользователя по email или apperr.ErrNotFound.
	UserByEmail(ctx context.Context, email string) (*models.User, error)

	// UserExists проверяет, зарегистрирован ли пользователь с таким email.
	UserExists(ctx context.Context, email string) (bool, error)
}

// AuthService отвечает за регистрацию по списку разрешённых email,
// авторизацию и выпуск JWT.
type AuthService struct {
	users         UserRepository
	jwtMaker      jwt.Maker
	allowedEmails map[string]struct{}
}

// NewAuthService создает новый экземпляр AuthService.
// Список разрешённых email передаётся явно, а не читается из окружения,
// чтобы сервис можно было тестировать изолированно.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, allowedEmails []string) *AuthService {
	allowed := make(map[string]struct{}, len(allowedEmails))
	for _, e := range allowedEmails {
		allowed[e] = struct{}{}
	}
	return &AuthService{
		users:         users,
		jwtMaker:      jwtMaker,
		allowedEmails: allowed,
	}
}

// Register создает нового пользователя с хэшированием пароля.
//
// Email должен входить в список разрешённых (apperr.ErrEmailNotAllowed)
// и не быть занятым (apperr.ErrEmailTaken). Предварительная проверка
// занятости дополняется уникальным ограничением в базе: гонка двух
// одновременных регистраций разрешается ограничением, а не блокировкой.
func (s *AuthService) Register(ctx context.Context, email, rawPassword, name string) (string, error) {
	const op = "services.auth.Register"

	if _, ok := s.allowedEmails[email]; !ok {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrEmailNotAllowed)
	}

	exists, err := s.users.UserExists(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrEmailTaken)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hashed,
	}
	if name != "" {
		user.Name = &name
	}
	return s.users.SaveUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}
