package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
)

// SaveRecipe вставляет новую запись рецепта и возвращает её вместе
// со сгенерированными id и временными метками.
// Пустые description и ingredients_text сохраняются как NULL.
func (s *Storage) SaveRecipe(ctx context.Context, recipe models.Recipe) (*models.Recipe, error) {
	const op = "storage.SaveRecipe"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO recipes (title, description, ingredients_text, instructions_text, created_by)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at`
	result := recipe
	err := s.DB.QueryRowContext(ctx, query,
		recipe.Title, recipe.Description, recipe.IngredientsText,
		recipe.InstructionsText, recipe.CreatedBy).
		Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RecipeByID возвращает рецепт вместе с отображаемыми данными автора.
// Если рецепт не найден, возвращает apperr.ErrNotFound.
func (s *Storage) RecipeByID(ctx context.Context, id string) (*models.RecipeRow, error) {
	const op = "storage.RecipeByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.title, r.description, r.ingredients_text, r.instructions_text,
				  r.created_by, r.created_at, r.updated_at, u.name, u.email
			  FROM recipes r
			  JOIN users u ON r.created_by = u.id
			  WHERE r.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.RecipeRow
	var description, ingredients, authorName sql.NullString
	if err := row.Scan(&result.ID, &result.Title, &description, &ingredients,
		&result.InstructionsText, &result.CreatedBy, &result.CreatedAt, &result.UpdatedAt,
		&authorName, &result.AuthorEmail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if description.Valid {
		result.Description = &description.String
	}
	if ingredients.Valid {
		result.IngredientsText = &ingredients.String
	}
	if authorName.Valid {
		result.AuthorName = &authorName.String
	}
	return &result, nil
}

// UpdateRecipe обновляет изменяемые поля рецепта, выставляет updated_at
// и возвращает обновлённую запись. Если рецепта нет, возвращает apperr.ErrNotFound.
func (s *Storage) UpdateRecipe(ctx context.Context, recipe models.Recipe, id string) (*models.Recipe, error) {
	const op = "storage.UpdateRecipe"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE recipes
			  SET title = $1, description = $2, ingredients_text = $3,
				  instructions_text = $4, updated_at = NOW()
			  WHERE id = $5
			  RETURNING id, title, description, ingredients_text, instructions_text,
				  created_by, created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query,
		recipe.Title, recipe.Description, recipe.IngredientsText,
		recipe.InstructionsText, id)

	var result models.Recipe
	var description, ingredients sql.NullString
	if err := row.Scan(&result.ID, &result.Title, &description, &ingredients,
		&result.InstructionsText, &result.CreatedBy, &result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if description.Valid {
		result.Description = &description.String
	}
	if ingredients.Valid {
		result.IngredientsText = &ingredients.String
	}
	return &result, nil
}

// ListRecipes возвращает все рецепты с данными авторов, новые первыми.
// Непустой searchTerm фильтрует записи по вхождению подстроки в название.
func (s *Storage) ListRecipes(ctx context.Context, searchTerm string) ([]*models.RecipeRow, error) {
	const op = "storage.ListRecipes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.title, r.description, r.ingredients_text, r.instructions_text,
				  r.created_by, r.created_at, r.updated_at, u.name, u.email
			  FROM recipes r
			  JOIN users u ON r.created_by = u.id
			  WHERE $1 = '' OR r.title LIKE '%' || $1 || '%'
			  ORDER BY r.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, searchTerm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RecipeRow
	for rows.Next() {
		var item models.RecipeRow
		var description, ingredients, authorName sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &description, &ingredients,
			&item.InstructionsText, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt,
			&authorName, &item.AuthorEmail); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if description.Valid {
			item.Description = &description.String
		}
		if ingredients.Valid {
			item.IngredientsText = &ingredients.String
		}
		if authorName.Valid {
			item.AuthorName = &authorName.String
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
