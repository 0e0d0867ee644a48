package mapper

import (
	"foodgram-service/internal/application/common"
	"foodgram-service/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User, isSubscribed bool) *common.UserResult {
	return &common.UserResult{
		Id:           user.Id,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func NewUserResultFromProfile(profile *entities.UserProfile) *common.UserResult {
	return NewUserResultFromEntity(&profile.User, profile.IsSubscribed)
}

func NewSubscriptionResultFromEntity(sub *entities.Subscription) *common.SubscriptionResult {
	recipes := make([]*common.RecipeSummaryResult, 0, len(sub.Recipes))
	for _, r := range sub.Recipes {
		recipes = append(recipes, NewRecipeSummaryResult(r))
	}
	return &common.SubscriptionResult{
		UserResult:   *NewUserResultFromProfile(&sub.Author),
		Recipes:      recipes,
		RecipesCount: sub.RecipesCount,
	}
}
