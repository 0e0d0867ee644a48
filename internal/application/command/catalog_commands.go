package command

import "foodgram-service/internal/application/common"

type CreateTagCommand struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor"`
	Slug  string `json:"slug" validate:"required,max=200"`
}

type CreateTagCommandResult struct {
	Result *common.TagResult `json:"result"`
}

type CreateIngredientCommand struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

type CreateIngredientCommandResult struct {
	Result *common.IngredientResult `json:"result"`
}
