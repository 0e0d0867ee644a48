package query

import (
	"github.com/google/uuid"

	"foodgram-service/internal/application/common"
)

type ListSubscriptionsQuery struct {
	UserId       uuid.UUID
	Page         common.Page
	RecipesLimit int
}

type UserQueryResult struct {
	Result *common.UserResult `json:"result"`
}

type SubscriptionQueryListResult struct {
	Count   int64                        `json:"count"`
	Results []*common.SubscriptionResult `json:"results"`
}
