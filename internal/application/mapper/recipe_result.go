package mapper

import (
	"foodgram-service/internal/application/common"
	"foodgram-service/internal/domain/entities"
)

func NewRecipeResultFromDetails(details *entities.RecipeDetails) *common.RecipeResult {
	ingredients := make([]*common.RecipeIngredientResult, 0, len(details.Ingredients))
	for _, ri := range details.Ingredients {
		ingredients = append(ingredients, &common.RecipeIngredientResult{
			Id:              ri.IngredientId,
			Name:            ri.Name,
			MeasurementUnit: ri.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}

	return &common.RecipeResult{
		Id:               details.Id,
		Tags:             NewTagResultsFromEntities(details.Tags),
		Author:           NewUserResultFromProfile(&details.Author),
		Ingredients:      ingredients,
		IsFavorited:      details.IsFavorited,
		IsInShoppingCart: details.IsInShoppingCart,
		Name:             details.Name,
		Image:            details.Image,
		Text:             details.Text,
		CookingTime:      details.CookingTime,
	}
}

func NewRecipeSummaryResult(summary entities.RecipeSummary) *common.RecipeSummaryResult {
	return &common.RecipeSummaryResult{
		Id:          summary.Id,
		Name:        summary.Name,
		Image:       summary.Image,
		CookingTime: summary.CookingTime,
	}
}

func NewShoppingListResults(items []entities.ShoppingListItem) []*common.ShoppingListItemResult {
	results := make([]*common.ShoppingListItemResult, 0, len(items))
	for _, item := range items {
		results = append(results, &common.ShoppingListItemResult{
			Name:            item.Name,
			MeasurementUnit: item.MeasurementUnit,
			TotalAmount:     item.TotalAmount,
		})
	}
	return results
}
