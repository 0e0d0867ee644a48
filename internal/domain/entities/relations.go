package entities

import (
	"time"

	"github.com/google/uuid"

	"foodgram-service/internal/domain/domainerr"
)

// RelationKind names a per-user recipe list backed by a join table.
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationShoppingCart RelationKind = "shopping_cart"
)

func (k RelationKind) Valid() bool {
	return k == RelationFavorite || k == RelationShoppingCart
}

type Follow struct {
	UserId    uuid.UUID
	AuthorId  uuid.UUID
	CreatedAt time.Time
}

func NewFollow(userId, authorId uuid.UUID) (*Follow, error) {
	if err := CheckNotSelf(userId, authorId); err != nil {
		return nil, err
	}
	return &Follow{UserId: userId, AuthorId: authorId, CreatedAt: time.Now()}, nil
}

func CheckNotSelf(userId, authorId uuid.UUID) error {
	if userId == authorId {
		return domainerr.InvalidArgument("users cannot subscribe to themselves")
	}
	return nil
}

// Subscription is a followed author together with a preview of their recipes.
type Subscription struct {
	Author       UserProfile
	Recipes      []RecipeSummary
	RecipesCount int64
}

type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	TotalAmount     int64
}

// RecipeFlags are the viewer-specific markers attached to a recipe.
type RecipeFlags struct {
	IsFavorited      bool
	IsInShoppingCart bool
}
