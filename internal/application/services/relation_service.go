package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/mapper"
	"foodgram-service/internal/domain/domainerr"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
	"foodgram-service/internal/messaging"
)

type RelationEvent struct {
	UserId   uuid.UUID `json:"user_id"`
	RecipeId uuid.UUID `json:"recipe_id"`
}

type RelationService struct {
	recipeRepo   repositories.RecipeRepository
	relationRepo repositories.RelationRepository
	events       interfaces.EventPublisher
	log          *logger.Logger
}

func NewRelationService(
	recipeRepo repositories.RecipeRepository,
	relationRepo repositories.RelationRepository,
	events interfaces.EventPublisher,
	baseLog *logger.Logger,
) interfaces.RelationService {
	return &RelationService{
		recipeRepo:   recipeRepo,
		relationRepo: relationRepo,
		events:       events,
		log:          baseLog.With("service", "RelationService"),
	}
}

func (s *RelationService) AddRelation(ctx context.Context, cmd *command.RelationCommand) (*command.AddRelationCommandResult, error) {
	if !cmd.Kind.Valid() {
		return nil, domainerr.InvalidArgument(fmt.Sprintf("unknown relation %q", cmd.Kind))
	}
	recipe, err := s.recipeRepo.FindById(ctx, cmd.RecipeId)
	if err != nil {
		return nil, err
	}

	if err := s.relationRepo.Add(ctx, cmd.Kind, cmd.UserId, cmd.RecipeId); err != nil {
		return nil, err
	}
	s.publish(ctx, addedEvent(cmd.Kind), RelationEvent{UserId: cmd.UserId, RecipeId: cmd.RecipeId})

	return &command.AddRelationCommandResult{Result: mapper.NewRecipeSummaryResult(recipe.Summary())}, nil
}

func (s *RelationService) RemoveRelation(ctx context.Context, cmd *command.RelationCommand) error {
	if !cmd.Kind.Valid() {
		return domainerr.InvalidArgument(fmt.Sprintf("unknown relation %q", cmd.Kind))
	}
	if err := s.relationRepo.Remove(ctx, cmd.Kind, cmd.UserId, cmd.RecipeId); err != nil {
		return err
	}
	s.publish(ctx, removedEvent(cmd.Kind), RelationEvent{UserId: cmd.UserId, RecipeId: cmd.RecipeId})
	return nil
}

func (s *RelationService) publish(ctx context.Context, event string, payload interface{}) {
	if err := s.events.Publish(ctx, event, payload); err != nil {
		s.log.Warn("failed to publish event", "event", event, "error", err)
	}
}

func addedEvent(kind entities.RelationKind) string {
	if kind == entities.RelationShoppingCart {
		return messaging.EventCartAdded
	}
	return messaging.EventFavoriteAdded
}

func removedEvent(kind entities.RelationKind) string {
	if kind == entities.RelationShoppingCart {
		return messaging.EventCartRemoved
	}
	return messaging.EventFavoriteRemoved
}
