package mapper

import (
	"foodgram-service/internal/application/common"
	"foodgram-service/internal/domain/entities"
)

func NewTagResultFromEntity(tag *entities.Tag) *common.TagResult {
	return &common.TagResult{Id: tag.Id, Name: tag.Name, Color: tag.Color, Slug: tag.Slug}
}

func NewTagResultsFromEntities(tags []entities.Tag) []*common.TagResult {
	results := make([]*common.TagResult, 0, len(tags))
	for i := range tags {
		results = append(results, NewTagResultFromEntity(&tags[i]))
	}
	return results
}

func NewIngredientResultFromEntity(ingredient *entities.Ingredient) *common.IngredientResult {
	return &common.IngredientResult{
		Id:              ingredient.Id,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func NewIngredientResultsFromEntities(ingredients []entities.Ingredient) []*common.IngredientResult {
	results := make([]*common.IngredientResult, 0, len(ingredients))
	for i := range ingredients {
		results = append(results, NewIngredientResultFromEntity(&ingredients[i]))
	}
	return results
}
