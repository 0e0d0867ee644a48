package command

import (
	"github.com/google/uuid"

	"foodgram-service/internal/application/common"
	"foodgram-service/internal/domain/entities"
)

type RelationCommand struct {
	Kind     entities.RelationKind
	UserId   uuid.UUID
	RecipeId uuid.UUID
}

type AddRelationCommandResult struct {
	Result *common.RecipeSummaryResult `json:"result"`
}

type FollowCommand struct {
	UserId   uuid.UUID
	AuthorId uuid.UUID
	// RecipesLimit truncates the author's recipe preview; negative means all.
	RecipesLimit int
}

type FollowCommandResult struct {
	Result *common.SubscriptionResult `json:"result"`
}
