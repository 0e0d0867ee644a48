package repositories

import (
	"context"

	"github.com/google/uuid"

	"foodgram-service/internal/domain/entities"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Tag, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]entities.Tag, error)
	List(ctx context.Context) ([]entities.Tag, error)
}

type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entities.Ingredient) (*entities.Ingredient, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error)
	FindByName(ctx context.Context, name string) (*entities.Ingredient, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]entities.Ingredient, error)
	// List returns ingredients whose name starts with namePrefix, ignoring case.
	List(ctx context.Context, namePrefix string) ([]entities.Ingredient, error)
}
