package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
)

// uniqueViolation — код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolation = "23505"

// SaveUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Нарушение уникальности email отображается в apperr.ErrEmailTaken.
func (s *Storage) SaveUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.SaveUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, name)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("%s: %w", op, apperr.ErrEmailTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// UserByEmail возвращает пользователя по его email.
// Если пользователь не найден, возвращает apperr.ErrNotFound.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.UserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, name, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)

	var name sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &name, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if name.Valid {
		u.Name = &name.String
	}
	return u, nil
}

// UserExists проверяет, зарегистрирован ли пользователь с указанным email.
func (s *Storage) UserExists(ctx context.Context, email string) (bool, error) {
	const op = "storage.UserExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UserByUID возвращает пользователя по его UID.
// Если пользователь не найден, возвращает apperr.ErrNotFound.
func (s *Storage) UserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.UserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, name, created_at
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var name sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &name, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if name.Valid {
		u.Name = &name.String
	}
	return u, nil
}

// RemoveUser удаляет пользователя по UID; рецепты удаляются каскадно
// внешним ключом recipes.created_by. Возвращает количество удалённых строк.
// Используется только административными сценариями, HTTP-эндпоинта нет.
func (s *Storage) RemoveUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.RemoveUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
