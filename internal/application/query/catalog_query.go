package query

import "foodgram-service/internal/application/common"

type TagQueryResult struct {
	Result *common.TagResult `json:"result"`
}

type TagQueryListResult struct {
	Result []*common.TagResult `json:"result"`
}

type IngredientQueryResult struct {
	Result *common.IngredientResult `json:"result"`
}

type IngredientQueryListResult struct {
	Result []*common.IngredientResult `json:"result"`
}
