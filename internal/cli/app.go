package cli

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/services"
	"foodgram-service/internal/application/validation"
	"foodgram-service/internal/config"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure"
	"foodgram-service/internal/infrastructure/db"
	"foodgram-service/internal/infrastructure/db/postgres"
	"foodgram-service/internal/infrastructure/logger"
	"foodgram-service/internal/infrastructure/storage"
	"foodgram-service/internal/messaging"
)

type repos struct {
	users        repositories.UserRepository
	tags         repositories.TagRepository
	ingredients  repositories.IngredientRepository
	recipes      repositories.RecipeRepository
	relations    repositories.RelationRepository
	follows      repositories.FollowRepository
	shoppingList repositories.ShoppingListRepository
}

type app struct {
	cfg   *config.Config
	log   *logger.Logger
	gdb   *gorm.DB
	sqlDB *sqlx.DB
	repos repos

	closers []func()
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}

// openApp connects the store and builds the repositories. Callers must
// call close.
func openApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	gdb, err := db.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.SQLX(gdb, cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, gdb: gdb, sqlDB: sqlDB}
	a.closers = append(a.closers, func() { _ = sqlDB.Close() })
	a.repos = repos{
		users:        postgres.NewUserRepository(gdb, log),
		tags:         postgres.NewTagRepository(gdb, log),
		ingredients:  postgres.NewIngredientRepository(gdb, log),
		recipes:      postgres.NewRecipeRepository(gdb, log),
		relations:    postgres.NewRelationRepository(gdb, log),
		follows:      postgres.NewFollowRepository(gdb, log),
		shoppingList: postgres.NewShoppingListRepository(sqlDB, cfg.Database.Driver == db.DriverPostgres, log),
	}
	return a, nil
}

func (a *app) migrate() error {
	if err := postgres.Migrate(a.gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a.log.Info("schema migrated", "driver", a.cfg.Database.Driver)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type appServices struct {
	catalog      interfaces.CatalogService
	recipes      interfaces.RecipeService
	relations    interfaces.RelationService
	users        interfaces.UserService
	shoppingList interfaces.ShoppingListService
}

func (a *app) buildServices(ctx context.Context) (*appServices, error) {
	redisService := infrastructure.NewRedisService(a.cfg.Redis, a.log)
	a.closers = append(a.closers, func() { _ = redisService.Close() })

	cache, err := infrastructure.NewCatalogCache(a.cfg.Cache.LRUSize, a.cfg.Cache.TTL, redisService, a.log)
	if err != nil {
		return nil, err
	}

	images, err := a.imageStore(ctx)
	if err != nil {
		return nil, err
	}
	events := a.publisher()

	recipeValidator := validation.NewRecipeValidator(a.repos.ingredients, a.repos.tags)
	return &appServices{
		catalog: services.NewCatalogService(a.repos.tags, a.repos.ingredients, cache, a.log),
		recipes: services.NewRecipeService(
			a.repos.recipes, a.repos.users, a.repos.relations, a.repos.follows,
			recipeValidator, images, events, a.log,
		),
		relations:    services.NewRelationService(a.repos.recipes, a.repos.relations, events, a.log),
		users:        services.NewUserService(a.repos.users, a.repos.follows, a.repos.recipes, events, a.log),
		shoppingList: services.NewShoppingListService(a.repos.shoppingList, a.log),
	}, nil
}

func (a *app) imageStore(ctx context.Context) (interfaces.ImageStore, error) {
	if a.cfg.Storage.Driver == "s3" {
		store, err := storage.NewS3Store(ctx, a.cfg.Storage)
		if err != nil {
			return nil, err
		}
		a.log.Info("image store ready", "driver", "s3", "bucket", a.cfg.Storage.S3Bucket)
		return store, nil
	}
	store, err := storage.NewLocalStore(a.cfg.Storage.LocalDir, a.cfg.Storage.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	a.log.Info("image store ready", "driver", "local", "dir", a.cfg.Storage.LocalDir)
	return store, nil
}

// publisher falls back to dropping events when nats is disabled or down;
// events are best effort and never fail a request.
func (a *app) publisher() interfaces.EventPublisher {
	if !a.cfg.NATS.Enabled {
		return messaging.NopPublisher{}
	}
	pub, err := messaging.ConnectNats(a.cfg.NATS, a.log)
	if err != nil {
		a.log.Warn("nats unavailable, events disabled", "error", err)
		return messaging.NopPublisher{}
	}
	a.closers = append(a.closers, pub.Close)
	return pub
}

const developmentJWTSecret = "foodgram-development-secret"

// jwtSecret allows an empty secret only in development mode.
func jwtSecret(cfg *config.Config, log *logger.Logger) string {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret
	}
	log.Warn("auth.jwt_secret is empty, using the development secret")
	return developmentJWTSecret
}
