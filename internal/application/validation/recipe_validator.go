package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/domain/domainerr"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/storage"
)

// RecipeValidator turns raw submissions into validated domain values. It
// reads the catalog to resolve references and never writes.
type RecipeValidator struct {
	ingredientRepo repositories.IngredientRepository
	tagRepo        repositories.TagRepository
}

func NewRecipeValidator(ingredientRepo repositories.IngredientRepository, tagRepo repositories.TagRepository) *RecipeValidator {
	return &RecipeValidator{ingredientRepo: ingredientRepo, tagRepo: tagRepo}
}

func (v *RecipeValidator) ValidateCreate(ctx context.Context, cmd *command.CreateRecipeCommand) (*entities.ValidatedRecipe, *storage.Image, error) {
	if err := ValidateStruct(cmd); err != nil {
		return nil, nil, err
	}

	recipe := entities.NewRecipe(cmd.AuthorId, cmd.Name, cmd.Text, cmd.CookingTime, toRecipeIngredients(cmd.Ingredients), cmd.Tags)
	validated, err := entities.NewValidatedRecipe(recipe)
	if err != nil {
		return nil, nil, err
	}

	image, err := storage.DecodeDataURL(cmd.Image)
	if err != nil {
		return nil, nil, err
	}

	if err := v.checkReferences(ctx, recipe.IngredientIds(), recipe.TagIds()); err != nil {
		return nil, nil, err
	}
	return validated, image, nil
}

// ValidateUpdate returns a nil image when the submission does not replace it.
func (v *RecipeValidator) ValidateUpdate(ctx context.Context, cmd *command.UpdateRecipeCommand) (*entities.ValidatedRecipePatch, *storage.Image, error) {
	if err := ValidateStruct(cmd); err != nil {
		return nil, nil, err
	}

	patch := entities.NewRecipePatch(cmd.Name, cmd.Text, cmd.CookingTime, toRecipeIngredients(cmd.Ingredients), cmd.Tags)
	validated, err := entities.NewValidatedRecipePatch(patch)
	if err != nil {
		return nil, nil, err
	}

	var image *storage.Image
	if cmd.Image != nil {
		image, err = storage.DecodeDataURL(*cmd.Image)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := v.checkReferences(ctx, patch.IngredientIds(), patch.TagIds()); err != nil {
		return nil, nil, err
	}
	return validated, image, nil
}

func (v *RecipeValidator) checkReferences(ctx context.Context, ingredientIds, tagIds []uuid.UUID) error {
	ingredients, err := v.ingredientRepo.FindByIds(ctx, ingredientIds)
	if err != nil {
		return err
	}
	foundIngredients := make([]uuid.UUID, 0, len(ingredients))
	for _, i := range ingredients {
		foundIngredients = append(foundIngredients, i.Id)
	}
	if missing, ok := firstMissing(ingredientIds, foundIngredients); ok {
		return domainerr.NotFound(fmt.Sprintf("ingredient %s not found", missing))
	}

	tags, err := v.tagRepo.FindByIds(ctx, tagIds)
	if err != nil {
		return err
	}
	foundTags := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		foundTags = append(foundTags, t.Id)
	}
	if missing, ok := firstMissing(tagIds, foundTags); ok {
		return domainerr.NotFound(fmt.Sprintf("tag %s not found", missing))
	}
	return nil
}

func firstMissing(wanted, found []uuid.UUID) (uuid.UUID, bool) {
	present := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range wanted {
		if _, ok := present[id]; !ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

func toRecipeIngredients(inputs []command.IngredientAmountInput) []entities.RecipeIngredient {
	items := make([]entities.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, entities.RecipeIngredient{IngredientId: in.ID, Amount: in.Amount})
	}
	return items
}
