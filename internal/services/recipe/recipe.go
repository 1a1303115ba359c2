// Package services содержит бизнес-логику для управления рецептами,
// включая авторитетные проверки владения, кеширование и публикацию событий.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/recipe-collection/internal/lib/apperr"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/recipe-collection/internal/models"
)

// RecipeRepository определяет методы для работы с рецептами в хранилище.
type RecipeRepository interface {
	// SaveRecipe добавляет новый рецепт и возвращает его с id и метками времени.
	SaveRecipe(ctx context.Context, recipe models.Recipe) (*models.Recipe, error)
	// RecipeByID возвращает рецепт с данными автора или apperr.ErrNotFound.
	RecipeByID(ctx context.Context, id string) (*models.RecipeRow, error)
	// UpdateRecipe перезаписывает изменяемые поля рецепта и возвращает обновлённую запись.
	UpdateRecipe(ctx context.Context, recipe models.Recipe, id string) (*models.Recipe, error)
	// ListRecipes возвращает рецепты с данными авторов, новые первыми.
	ListRecipes(ctx context.Context, searchTerm string) ([]*models.RecipeRow, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует события жизненного цикла рецептов.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// RecipeService реализует бизнес-логику работы с рецептами.
//
// Проверки владения выполняются здесь, а не только в middleware:
// изменяющие операции сверяют владельца со свежезагруженной записью,
// чтобы закрыть разрыв между моментом проверки и моментом записи.
type RecipeService struct {
	repo   RecipeRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// NewRecipeService создает новый экземпляр RecipeService.
func NewRecipeService(repo RecipeRepository, cache Cache, events EventPublisher, log *slog.Logger) *RecipeService {
	return &RecipeService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// Create создает новый рецепт от имени пользователя actingUserUID.
// Создавать рецепты можно только от собственного имени:
// несовпадение created_by с личностью из токена — apperr.ErrForbidden.
func (s *RecipeService) Create(ctx context.Context, req models.DummyRecipe, actingUserUID string) (*models.Recipe, error) {
	const op = "services.recipe.Create"

	if req.CreatedBy != actingUserUID {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrForbidden)
	}

	recipe := models.Recipe{
		Title:            req.Title,
		Description:      textOrNil(req.Description),
		IngredientsText:  textOrNil(req.IngredientsText),
		InstructionsText: req.InstructionsText,
		CreatedBy:        req.CreatedBy,
	}

	saved, err := s.repo.SaveRecipe(ctx, recipe)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new recipe", slog.String("id", saved.ID))

	s.publish("recipe.created", saved)
	return saved, nil
}

// Update обновляет рецепт под авторитетной проверкой владения:
// запись загружается заново, и только совпадение владельца с actingUserUID
// допускает перезапись. updated_at выставляется хранилищем.
func (s *RecipeService) Update(ctx context.Context, id string, req models.DummyRecipeUpdate, actingUserUID string) (*models.Recipe, error) {
	const op = "services.recipe.Update"

	existing, err := s.repo.RecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != actingUserUID {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrForbidden)
	}

	recipe := models.Recipe{
		Title:            req.Title,
		Description:      textOrNil(req.Description),
		IngredientsText:  textOrNil(req.IngredientsText),
		InstructionsText: req.InstructionsText,
	}
	updated, err := s.repo.UpdateRecipe(ctx, recipe, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated recipe in storage", slog.String("id", id))

	cacheKey := fmt.Sprintf("recipe:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	s.publish("recipe.updated", updated)
	return updated, nil
}

// Get возвращает рецепт с данными автора, используя кеш или репозиторий.
func (s *RecipeService) Get(ctx context.Context, id string) (*models.RecipeRow, error) {
	var result *models.RecipeRow
	cacheKey := fmt.Sprintf("recipe:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.RecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает рецепты с данными авторов, новые первыми.
// Непустой searchTerm фильтрует по вхождению подстроки в название.
// Пустой результат — не ошибка.
func (s *RecipeService) List(ctx context.Context, searchTerm string) ([]*models.RecipeRow, error) {
	return s.repo.ListRecipes(ctx, searchTerm)
}

// publish отправляет событие рецепта; ошибка публикации не прерывает запрос.
func (s *RecipeService) publish(routingKey string, recipe *models.Recipe) {
	event := rabbitmq.RecipeEvent{
		RecipeID:   recipe.ID,
		Title:      recipe.Title,
		AuthorUID:  recipe.CreatedBy,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(routingKey, event); err != nil {
		s.log.Warn("failed to publish recipe event", slog.String("routing_key", routingKey), slog.Any("err", err))
	}
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
