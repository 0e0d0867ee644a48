package common

import "github.com/google/uuid"

type UserResult struct {
	Id           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type SubscriptionResult struct {
	UserResult
	Recipes      []*RecipeSummaryResult `json:"recipes"`
	RecipesCount int64                  `json:"recipes_count"`
}
