package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) SaveRecipe(ctx context.Context, recipe models.Recipe) (*models.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *RepoMock) RecipeByID(ctx context.Context, id string) (*models.RecipeRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecipeRow), args.Error(1)
}

func (m *RepoMock) UpdateRecipe(ctx context.Context, recipe models.Recipe, id string) (*models.Recipe, error) {
	args := m.Called(ctx, recipe, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *RepoMock) ListRecipes(ctx context.Context, searchTerm string) ([]*models.RecipeRow, error) {
	args := m.Called(ctx, searchTerm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RecipeRow), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	ownerUID    = "11111111-1111-1111-1111-111111111111"
	strangerUID = "22222222-2222-2222-2222-222222222222"
	recipeID    = "33333333-3333-3333-3333-333333333333"
)

func TestRecipeService_Create(t *testing.T) {
	req := models.DummyRecipe{
		Title:            "Борщ",
		Description:      "Классический рецепт",
		IngredientsText:  "свёкла\nкапуста",
		InstructionsText: "варить час",
		CreatedBy:        ownerUID,
	}

	t.Run("успешное создание с публикацией события", func(t *testing.T) {
		repo := new(RepoMock)
		events := new(PublisherMock)

		saved := &models.Recipe{
			ID:               recipeID,
			Title:            req.Title,
			InstructionsText: req.InstructionsText,
			CreatedBy:        ownerUID,
		}
		repo.On("SaveRecipe", mock.Anything, mock.MatchedBy(func(r models.Recipe) bool {
			return r.Title == "Борщ" &&
				r.Description != nil && *r.Description == "Классический рецепт" &&
				r.CreatedBy == ownerUID
		})).Return(saved, nil)
		events.On("Publish", "recipe.created", mock.Anything).Return(nil)

		svc := NewRecipeService(repo, new(CacheMock), events, discardLogger())
		got, err := svc.Create(context.Background(), req, ownerUID)

		require.NoError(t, err)
		assert.Equal(t, recipeID, got.ID)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("created_by не совпадает с автором запроса", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewRecipeService(repo, new(CacheMock), new(PublisherMock), discardLogger())

		got, err := svc.Create(context.Background(), req, strangerUID)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Nil(t, got)
		repo.AssertNotCalled(t, "SaveRecipe", mock.Anything, mock.Anything)
	})

	t.Run("пустые опциональные поля сохраняются как nil", func(t *testing.T) {
		repo := new(RepoMock)
		events := new(PublisherMock)

		minimal := models.DummyRecipe{
			Title:            "Чай",
			InstructionsText: "залить кипятком",
			CreatedBy:        ownerUID,
		}
		repo.On("SaveRecipe", mock.Anything, mock.MatchedBy(func(r models.Recipe) bool {
			return r.Description == nil && r.IngredientsText == nil
		})).Return(&models.Recipe{ID: recipeID, CreatedBy: ownerUID}, nil)
		events.On("Publish", "recipe.created", mock.Anything).Return(nil)

		svc := NewRecipeService(repo, new(CacheMock), events, discardLogger())
		_, err := svc.Create(context.Background(), minimal, ownerUID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка публикации не прерывает запрос", func(t *testing.T) {
		repo := new(RepoMock)
		events := new(PublisherMock)

		repo.On("SaveRecipe", mock.Anything, mock.Anything).
			Return(&models.Recipe{ID: recipeID, CreatedBy: ownerUID}, nil)
		events.On("Publish", "recipe.created", mock.Anything).
			Return(errors.New("broker unavailable"))

		svc := NewRecipeService(repo, new(CacheMock), events, discardLogger())
		got, err := svc.Create(context.Background(), req, ownerUID)

		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestRecipeService_Update(t *testing.T) {
	req := models.DummyRecipeUpdate{
		Title:            "Борщ обновлённый",
		InstructionsText: "варить полтора часа",
	}

	existing := &models.RecipeRow{
		Recipe: models.Recipe{
			ID:        recipeID,
			Title:     "Борщ",
			CreatedBy: ownerUID,
		},
	}

	t.Run("успешное обновление с инвалидацией кеша", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		events := new(PublisherMock)

		updated := &models.Recipe{ID: recipeID, Title: req.Title, CreatedBy: ownerUID}
		repo.On("RecipeByID", mock.Anything, recipeID).Return(existing, nil)
		repo.On("UpdateRecipe", mock.Anything, mock.Anything, recipeID).Return(updated, nil)
		cache.On("Invalidate", "recipe:"+recipeID).Return(nil)
		events.On("Publish", "recipe.updated", mock.Anything).Return(nil)

		svc := NewRecipeService(repo, cache, events, discardLogger())
		got, err := svc.Update(context.Background(), recipeID, req, ownerUID)

		require.NoError(t, err)
		assert.Equal(t, "Борщ обновлённый", got.Title)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("рецепт не найден", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("RecipeByID", mock.Anything, recipeID).Return(nil, apperr.ErrNotFound)

		svc := NewRecipeService(repo, new(CacheMock), new(PublisherMock), discardLogger())
		got, err := svc.Update(context.Background(), recipeID, req, ownerUID)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Nil(t, got)
		repo.AssertNotCalled(t, "UpdateRecipe", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("чужой рецепт нельзя обновить", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("RecipeByID", mock.Anything, recipeID).Return(existing, nil)

		svc := NewRecipeService(repo, new(CacheMock), new(PublisherMock), discardLogger())
		got, err := svc.Update(context.Background(), recipeID, req, strangerUID)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Nil(t, got)
		repo.AssertNotCalled(t, "UpdateRecipe", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка инвалидации кеша не прерывает запрос", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		events := new(PublisherMock)

		updated := &models.Recipe{ID: recipeID, Title: req.Title, CreatedBy: ownerUID}
		repo.On("RecipeByID", mock.Anything, recipeID).Return(existing, nil)
		repo.On("UpdateRecipe", mock.Anything, mock.Anything, recipeID).Return(updated, nil)
		cache.On("Invalidate", "recipe:"+recipeID).Return(errors.New("redis down"))
		events.On("Publish", "recipe.updated", mock.Anything).Return(nil)

		svc := NewRecipeService(repo, cache, events, discardLogger())
		got, err := svc.Update(context.Background(), recipeID, req, ownerUID)

		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestRecipeService_Get(t *testing.T) {
	row := &models.RecipeRow{
		Recipe: models.Recipe{ID: recipeID, Title: "Борщ", CreatedBy: ownerUID},
	}

	t.Run("промах кеша и чтение из хранилища", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		cache.On("Get", "recipe:"+recipeID, mock.Anything).Return(false, nil)
		repo.On("RecipeByID", mock.Anything, recipeID).Return(row, nil)
		cache.On("Set", "recipe:"+recipeID, row, time.Hour).Return(nil)

		svc := NewRecipeService(repo, cache, new(PublisherMock), discardLogger())
		got, err := svc.Get(context.Background(), recipeID)

		require.NoError(t, err)
		assert.Equal(t, "Борщ", got.Title)
		cache.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("попадание в кеш без обращения к хранилищу", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		cache.On("Get", "recipe:"+recipeID, mock.Anything).
			Run(func(args mock.Arguments) {
				ptr := args.Get(1).(**models.RecipeRow)
				*ptr = row
			}).Return(true, nil)

		svc := NewRecipeService(repo, cache, new(PublisherMock), discardLogger())
		got, err := svc.Get(context.Background(), recipeID)

		require.NoError(t, err)
		assert.Equal(t, recipeID, got.ID)
		repo.AssertNotCalled(t, "RecipeByID", mock.Anything, mock.Anything)
	})

	t.Run("рецепт не найден", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		cache.On("Get", "recipe:"+recipeID, mock.Anything).Return(false, nil)
		repo.On("RecipeByID", mock.Anything, recipeID).Return(nil, apperr.ErrNotFound)

		svc := NewRecipeService(repo, cache, new(PublisherMock), discardLogger())
		got, err := svc.Get(context.Background(), recipeID)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Nil(t, got)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecipeService_List(t *testing.T) {
	tests := []struct {
		name       string
		searchTerm string
		rows       []*models.RecipeRow
	}{
		{
			name:       "без фильтра",
			searchTerm: "",
			rows: []*models.RecipeRow{
				{Recipe: models.Recipe{ID: "id-1", Title: "Борщ"}},
				{Recipe: models.Recipe{ID: "id-2", Title: "Плов"}},
			},
		},
		{
			name:       "с поисковым запросом",
			searchTerm: "Борщ",
			rows: []*models.RecipeRow{
				{Recipe: models.Recipe{ID: "id-1", Title: "Борщ"}},
			},
		},
		{
			name:       "пустой результат не ошибка",
			searchTerm: "нет такого",
			rows:       []*models.RecipeRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ListRecipes", mock.Anything, tt.searchTerm).Return(tt.rows, nil)

			svc := NewRecipeService(repo, new(CacheMock), new(PublisherMock), discardLogger())
			got, err := svc.List(context.Background(), tt.searchTerm)

			require.NoError(t, err)
			assert.Len(t, got, len(tt.rows))
			repo.AssertExpectations(t)
		})
	}
}
