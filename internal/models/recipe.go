// Package models содержит доменные структуры, описывающие рецепт,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Recipe представляет собой основную модель рецепта,
// используемую в бизнес-логике и хранилище.
// Поля Description и IngredientsText могут быть nil —
// это означает, что текст не был заполнен автором.
type Recipe struct {
	ID               string    `json:"id"`                // Уникальный идентификатор рецепта
	Title            string    `json:"title"`             // Название рецепта
	Description      *string   `json:"description"`       // Краткое описание, опционально
	IngredientsText  *string   `json:"ingredients_text"`  // Ингредиенты, по одному на строку
	InstructionsText string    `json:"instructions_text"` // Шаги приготовления, по одному на строку
	CreatedBy        string    `json:"created_by"`        // UID пользователя-владельца
	CreatedAt        time.Time `json:"created_at"`        // Дата создания
	UpdatedAt        time.Time `json:"updated_at"`        // Дата последнего изменения
}

// RecipeRow объединяет рецепт с отображаемыми данными автора,
// получается JOIN-запросом к таблицам recipes и users.
type RecipeRow struct {
	Recipe
	AuthorName  *string `json:"author_name"`  // Имя автора, может отсутствовать
	AuthorEmail string  `json:"author_email"` // Email автора
}

// AuthorDisplay возвращает имя автора для отображения:
// имя, если оно задано, иначе email.
func (r *RecipeRow) AuthorDisplay() string {
	if r.AuthorName != nil && *r.AuthorName != "" {
		return *r.AuthorName
	}
	return r.AuthorEmail
}

// DummyRecipe используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Recipe.
// Пустые Description и IngredientsText означают отсутствие текста.
type DummyRecipe struct {
	Title            string `json:"title" validate:"required,min=1,max=200"`              // Название (1-200 символов)
	Description      string `json:"description" validate:"omitempty,max=2000"`            // Описание, опционально
	IngredientsText  string `json:"ingredients_text" validate:"omitempty,max=5000"`       // Ингредиенты, опционально
	InstructionsText string `json:"instructions_text" validate:"required,min=1,max=5000"` // Шаги (1-5000 символов)
	CreatedBy        string `json:"created_by" validate:"required,uuid"`                  // UID владельца
}

// DummyRecipeUpdate используется для приёма данных при обновлении рецепта.
// Владелец при обновлении не меняется, поэтому поле created_by отсутствует.
type DummyRecipeUpdate struct {
	Title            string `json:"title" validate:"required,min=1,max=200"`
	Description      string `json:"description" validate:"omitempty,max=2000"`
	IngredientsText  string `json:"ingredients_text" validate:"omitempty,max=5000"`
	InstructionsText string `json:"instructions_text" validate:"required,min=1,max=5000"`
}
