package common

import "github.com/google/uuid"

type RecipeIngredientResult struct {
	Id              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeResult struct {
	Id               uuid.UUID                 `json:"id"`
	Tags             []*TagResult              `json:"tags"`
	Author           *UserResult               `json:"author"`
	Ingredients      []*RecipeIngredientResult `json:"ingredients"`
	IsFavorited      bool                      `json:"is_favorited"`
	IsInShoppingCart bool                      `json:"is_in_shopping_cart"`
	Name             string                    `json:"name"`
	Image            string                    `json:"image"`
	Text             string                    `json:"text"`
	CookingTime      int                       `json:"cooking_time"`
}

type RecipeSummaryResult struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

type ShoppingListItemResult struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}
