package recipecollection

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/recipe-collection/internal/cache"
	"github.com/magabrotheeeer/recipe-collection/internal/config"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/jwt"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/recipe-collection/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-collection/internal/migrations"
	authservice "github.com/magabrotheeeer/recipe-collection/internal/services/auth"
	recipeservice "github.com/magabrotheeeer/recipe-collection/internal/services/recipe"
	"github.com/magabrotheeeer/recipe-collection/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmq.Connect(cfg.AddressRabbitMQ, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}
	mqChannel, err := rabbitmq.SetupChannel(mqConn, []rabbitmq.QueueConfig{
		{QueueName: "recipe-created", RoutingKey: "recipe.created"},
		{QueueName: "recipe-updated", RoutingKey: "recipe.updated"},
	})
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker, cfg.AllowedEmailList())
	recipeService := recipeservice.NewRecipeService(db, cacheRedis, rabbitmq.NewPublisher(mqChannel), logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, recipeService, jwtMaker)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
