package interfaces

import (
	"context"

	"github.com/google/uuid"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/query"
)

type CatalogService interface {
	CreateTag(ctx context.Context, cmd *command.CreateTagCommand) (*command.CreateTagCommandResult, error)
	ListTags(ctx context.Context) (*query.TagQueryListResult, error)
	GetTag(ctx context.Context, id uuid.UUID) (*query.TagQueryResult, error)
	CreateIngredient(ctx context.Context, cmd *command.CreateIngredientCommand) (*command.CreateIngredientCommandResult, error)
	ListIngredients(ctx context.Context, namePrefix string) (*query.IngredientQueryListResult, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*query.IngredientQueryResult, error)
}

type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd *command.CreateRecipeCommand) (*command.CreateRecipeCommandResult, error)
	UpdateRecipe(ctx context.Context, cmd *command.UpdateRecipeCommand) (*command.UpdateRecipeCommandResult, error)
	DeleteRecipe(ctx context.Context, cmd *command.DeleteRecipeCommand) error
	GetRecipe(ctx context.Context, viewerId *uuid.UUID, id uuid.UUID) (*query.RecipeQueryResult, error)
	ListRecipes(ctx context.Context, q *query.ListRecipesQuery) (*query.RecipeQueryListResult, error)
}

type RelationService interface {
	AddRelation(ctx context.Context, cmd *command.RelationCommand) (*command.AddRelationCommandResult, error)
	RemoveRelation(ctx context.Context, cmd *command.RelationCommand) error
}

type UserService interface {
	GetUser(ctx context.Context, viewerId *uuid.UUID, id uuid.UUID) (*query.UserQueryResult, error)
	Follow(ctx context.Context, cmd *command.FollowCommand) (*command.FollowCommandResult, error)
	Unfollow(ctx context.Context, cmd *command.FollowCommand) error
	ListSubscriptions(ctx context.Context, q *query.ListSubscriptionsQuery) (*query.SubscriptionQueryListResult, error)
}

type ShoppingListService interface {
	GetShoppingList(ctx context.Context, userId uuid.UUID) (*query.ShoppingListQueryResult, error)
	RenderShoppingList(ctx context.Context, userId uuid.UUID) ([]byte, error)
}
