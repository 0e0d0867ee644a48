package repositories

import (
	"context"

	"github.com/google/uuid"

	"foodgram-service/internal/domain/entities"
)

// RecipeRepository persists the recipe aggregate. Create, Update, Delete and
// ReplaceAssociations each run in a single transaction.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entities.ValidatedRecipe) (*entities.Recipe, error)
	Update(ctx context.Context, actorId, recipeId uuid.UUID, patch *entities.ValidatedRecipePatch) (*entities.Recipe, error)
	ReplaceAssociations(ctx context.Context, actorId, recipeId uuid.UUID, associations *entities.ValidatedAssociations) error
	Delete(ctx context.Context, actorId, recipeId uuid.UUID) (*entities.Recipe, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
	List(ctx context.Context, filter entities.RecipeFilter) ([]entities.Recipe, int64, error)
	ListSummariesByAuthor(ctx context.Context, authorId uuid.UUID, limit int) ([]entities.RecipeSummary, int64, error)
}
