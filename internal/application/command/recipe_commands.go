package command

import (
	"github.com/google/uuid"

	"foodgram-service/internal/application/common"
)

type IngredientAmountInput struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount" validate:"gte=1"`
}

type CreateRecipeCommand struct {
	AuthorId    uuid.UUID               `json:"-"`
	Name        string                  `json:"name" validate:"required,max=200"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int                     `json:"cooking_time" validate:"gte=1"`
	Image       string                  `json:"image" validate:"required"`
	Ingredients []IngredientAmountInput `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	Tags        []uuid.UUID             `json:"tags" validate:"required,min=1,unique,dive,required"`
}

type CreateRecipeCommandResult struct {
	Result *common.RecipeResult `json:"result"`
}

// UpdateRecipeCommand leaves nil scalars untouched. Ingredients and tags are
// always replaced as a whole.
type UpdateRecipeCommand struct {
	ActorId     uuid.UUID               `json:"-"`
	RecipeId    uuid.UUID               `json:"-"`
	Name        *string                 `json:"name" validate:"omitnil,min=1,max=200"`
	Text        *string                 `json:"text" validate:"omitnil,min=1"`
	CookingTime *int                    `json:"cooking_time" validate:"omitnil,gte=1"`
	Image       *string                 `json:"image" validate:"omitnil,min=1"`
	Ingredients []IngredientAmountInput `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	Tags        []uuid.UUID             `json:"tags" validate:"required,min=1,unique,dive,required"`
}

type UpdateRecipeCommandResult struct {
	Result *common.RecipeResult `json:"result"`
}

type DeleteRecipeCommand struct {
	ActorId  uuid.UUID
	RecipeId uuid.UUID
}
