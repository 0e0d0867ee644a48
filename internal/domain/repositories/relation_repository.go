package repositories

import (
	"context"

	"github.com/google/uuid"

	"foodgram-service/internal/domain/entities"
)

type RelationRepository interface {
	Add(ctx context.Context, kind entities.RelationKind, userId, recipeId uuid.UUID) error
	Remove(ctx context.Context, kind entities.RelationKind, userId, recipeId uuid.UUID) error
	Exists(ctx context.Context, kind entities.RelationKind, userId, recipeId uuid.UUID) (bool, error)
	Flags(ctx context.Context, userId uuid.UUID, recipeIds []uuid.UUID) (map[uuid.UUID]entities.RecipeFlags, error)
}

type FollowRepository interface {
	Add(ctx context.Context, follow *entities.Follow) error
	Remove(ctx context.Context, userId, authorId uuid.UUID) error
	IsFollowing(ctx context.Context, userId, authorId uuid.UUID) (bool, error)
	// FollowedAmong returns the subset of authorIds that userId follows.
	FollowedAmong(ctx context.Context, userId uuid.UUID, authorIds []uuid.UUID) (map[uuid.UUID]bool, error)
	ListAuthors(ctx context.Context, userId uuid.UUID, limit, offset int) ([]entities.User, int64, error)
}

type ShoppingListRepository interface {
	Aggregate(ctx context.Context, userId uuid.UUID) ([]entities.ShoppingListItem, error)
}
