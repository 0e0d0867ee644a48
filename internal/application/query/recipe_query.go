package query

import (
	"github.com/google/uuid"

	"foodgram-service/internal/application/common"
)

type ListRecipesQuery struct {
	// ViewerId is nil for anonymous callers.
	ViewerId         *uuid.UUID
	AuthorId         *uuid.UUID
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Page             common.Page
}

type RecipeQueryResult struct {
	Result *common.RecipeResult `json:"result"`
}

type RecipeQueryListResult struct {
	Count   int64                  `json:"count"`
	Results []*common.RecipeResult `json:"results"`
}

type ShoppingListQueryResult struct {
	Result []*common.ShoppingListItemResult `json:"result"`
}
