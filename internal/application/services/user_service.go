package services

import (
	"context"

	"github.com/google/uuid"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/common"
	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/mapper"
	"foodgram-service/internal/application/query"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
	"foodgram-service/internal/messaging"
)

type FollowEvent struct {
	UserId   uuid.UUID `json:"user_id"`
	AuthorId uuid.UUID `json:"author_id"`
}

type UserService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	recipeRepo repositories.RecipeRepository
	events     interfaces.EventPublisher
	log        *logger.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	recipeRepo repositories.RecipeRepository,
	events interfaces.EventPublisher,
	baseLog *logger.Logger,
) interfaces.UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		recipeRepo: recipeRepo,
		events:     events,
		log:        baseLog.With("service", "UserService"),
	}
}

func (s *UserService) GetUser(ctx context.Context, viewerId *uuid.UUID, id uuid.UUID) (*query.UserQueryResult, error) {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerId != nil && *viewerId != id {
		if isSubscribed, err = s.followRepo.IsFollowing(ctx, *viewerId, id); err != nil {
			return nil, err
		}
	}

	return &query.UserQueryResult{Result: mapper.NewUserResultFromEntity(user, isSubscribed)}, nil
}

func (s *UserService) Follow(ctx context.Context, cmd *command.FollowCommand) (*command.FollowCommandResult, error) {
	follow, err := entities.NewFollow(cmd.UserId, cmd.AuthorId)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.FindById(ctx, cmd.AuthorId)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Add(ctx, follow); err != nil {
		return nil, err
	}
	if err := s.events.Publish(ctx, messaging.EventFollowAdded, FollowEvent{UserId: cmd.UserId, AuthorId: cmd.AuthorId}); err != nil {
		s.log.Warn("failed to publish event", "event", messaging.EventFollowAdded, "error", err)
	}

	sub, err := s.subscription(ctx, *author, cmd.RecipesLimit)
	if err != nil {
		return nil, err
	}
	return &command.FollowCommandResult{Result: sub}, nil
}

func (s *UserService) Unfollow(ctx context.Context, cmd *command.FollowCommand) error {
	if err := entities.CheckNotSelf(cmd.UserId, cmd.AuthorId); err != nil {
		return err
	}
	if err := s.followRepo.Remove(ctx, cmd.UserId, cmd.AuthorId); err != nil {
		return err
	}
	if err := s.events.Publish(ctx, messaging.EventFollowRemoved, FollowEvent{UserId: cmd.UserId, AuthorId: cmd.AuthorId}); err != nil {
		s.log.Warn("failed to publish event", "event", messaging.EventFollowRemoved, "error", err)
	}
	return nil
}

func (s *UserService) ListSubscriptions(ctx context.Context, q *query.ListSubscriptionsQuery) (*query.SubscriptionQueryListResult, error) {
	page := q.Page.Normalize()
	authors, total, err := s.followRepo.ListAuthors(ctx, q.UserId, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	results := make([]*common.SubscriptionResult, 0, len(authors))
	for _, author := range authors {
		sub, err := s.subscription(ctx, author, q.RecipesLimit)
		if err != nil {
			return nil, err
		}
		results = append(results, sub)
	}
	return &query.SubscriptionQueryListResult{Count: total, Results: results}, nil
}

func (s *UserService) subscription(ctx context.Context, author entities.User, recipesLimit int) (*common.SubscriptionResult, error) {
	recipes, count, err := s.recipeRepo.ListSummariesByAuthor(ctx, author.Id, recipesLimit)
	if err != nil {
		return nil, err
	}
	return mapper.NewSubscriptionResultFromEntity(&entities.Subscription{
		Author:       entities.UserProfile{User: author, IsSubscribed: true},
		Recipes:      recipes,
		RecipesCount: count,
	}), nil
}
