package services

import (
	"context"

	"github.com/google/uuid"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/common"
	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/mapper"
	"foodgram-service/internal/application/query"
	"foodgram-service/internal/application/validation"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
	"foodgram-service/internal/messaging"
)

type RecipeEvent struct {
	RecipeId uuid.UUID `json:"recipe_id"`
	AuthorId uuid.UUID `json:"author_id"`
	Name     string    `json:"name,omitempty"`
}

type RecipeService struct {
	recipeRepo   repositories.RecipeRepository
	userRepo     repositories.UserRepository
	relationRepo repositories.RelationRepository
	followRepo   repositories.FollowRepository
	validator    *validation.RecipeValidator
	images       interfaces.ImageStore
	events       interfaces.EventPublisher
	log          *logger.Logger
}

func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	userRepo repositories.UserRepository,
	relationRepo repositories.RelationRepository,
	followRepo repositories.FollowRepository,
	validator *validation.RecipeValidator,
	images interfaces.ImageStore,
	events interfaces.EventPublisher,
	baseLog *logger.Logger,
) interfaces.RecipeService {
	return &RecipeService{
		recipeRepo:   recipeRepo,
		userRepo:     userRepo,
		relationRepo: relationRepo,
		followRepo:   followRepo,
		validator:    validator,
		images:       images,
		events:       events,
		log:          baseLog.With("service", "RecipeService"),
	}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, cmd *command.CreateRecipeCommand) (*command.CreateRecipeCommandResult, error) {
	validated, image, err := s.validator.ValidateCreate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	ref, err := s.images.Save(ctx, image)
	if err != nil {
		return nil, err
	}
	validated.SetImage(ref)

	created, err := s.recipeRepo.Create(ctx, validated)
	if err != nil {
		s.discardImage(ctx, ref)
		return nil, err
	}
	s.log.Info("recipe created", "recipe_id", created.Id, "author_id", created.AuthorId)
	s.publish(ctx, messaging.EventRecipeCreated, RecipeEvent{RecipeId: created.Id, AuthorId: created.AuthorId, Name: created.Name})

	results, err := s.toResults(ctx, &cmd.AuthorId, []entities.Recipe{*created})
	if err != nil {
		return nil, err
	}
	return &command.CreateRecipeCommandResult{Result: results[0]}, nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd *command.UpdateRecipeCommand) (*command.UpdateRecipeCommandResult, error) {
	existing, err := s.recipeRepo.FindById(ctx, cmd.RecipeId)
	if err != nil {
		return nil, err
	}
	if err := existing.EnsureOwnedBy(cmd.ActorId); err != nil {
		return nil, err
	}

	validated, image, err := s.validator.ValidateUpdate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var newRef string
	if image != nil {
		newRef, err = s.images.Save(ctx, image)
		if err != nil {
			return nil, err
		}
		validated.SetImage(newRef)
	}

	updated, err := s.recipeRepo.Update(ctx, cmd.ActorId, cmd.RecipeId, validated)
	if err != nil {
		if newRef != "" {
			s.discardImage(ctx, newRef)
		}
		return nil, err
	}
	if newRef != "" && existing.Image != "" && existing.Image != newRef {
		s.discardImage(ctx, existing.Image)
	}
	s.log.Info("recipe updated", "recipe_id", updated.Id)
	s.publish(ctx, messaging.EventRecipeUpdated, RecipeEvent{RecipeId: updated.Id, AuthorId: updated.AuthorId, Name: updated.Name})

	results, err := s.toResults(ctx, &cmd.ActorId, []entities.Recipe{*updated})
	if err != nil {
		return nil, err
	}
	return &command.UpdateRecipeCommandResult{Result: results[0]}, nil
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, cmd *command.DeleteRecipeCommand) error {
	deleted, err := s.recipeRepo.Delete(ctx, cmd.ActorId, cmd.RecipeId)
	if err != nil {
		return err
	}
	if deleted.Image != "" {
		s.discardImage(ctx, deleted.Image)
	}
	s.log.Info("recipe deleted", "recipe_id", deleted.Id)
	s.publish(ctx, messaging.EventRecipeDeleted, RecipeEvent{RecipeId: deleted.Id, AuthorId: deleted.AuthorId})
	return nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, viewerId *uuid.UUID, id uuid.UUID) (*query.RecipeQueryResult, error) {
	recipe, err := s.recipeRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	results, err := s.toResults(ctx, viewerId, []entities.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &query.RecipeQueryResult{Result: results[0]}, nil
}

// ListRecipes applies the viewer-relative filters only for authenticated
// viewers; an anonymous viewer has no favorites or cart, so those filters
// match nothing.
func (s *RecipeService) ListRecipes(ctx context.Context, q *query.ListRecipesQuery) (*query.RecipeQueryListResult, error) {
	if (q.IsFavorited || q.IsInShoppingCart) && q.ViewerId == nil {
		return &query.RecipeQueryListResult{Count: 0, Results: []*common.RecipeResult{}}, nil
	}

	page := q.Page.Normalize()
	filter := entities.RecipeFilter{
		AuthorId: q.AuthorId,
		TagSlugs: q.TagSlugs,
		Limit:    page.Limit,
		Offset:   page.Offset(),
	}
	if q.IsFavorited {
		filter.FavoritedBy = q.ViewerId
	}
	if q.IsInShoppingCart {
		filter.InCartOf = q.ViewerId
	}

	recipes, total, err := s.recipeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	results, err := s.toResults(ctx, q.ViewerId, recipes)
	if err != nil {
		return nil, err
	}
	return &query.RecipeQueryListResult{Count: total, Results: results}, nil
}

// toResults attaches authors and viewer flags to a batch of recipes with a
// fixed number of queries.
func (s *RecipeService) toResults(ctx context.Context, viewerId *uuid.UUID, recipes []entities.Recipe) ([]*common.RecipeResult, error) {
	if len(recipes) == 0 {
		return []*common.RecipeResult{}, nil
	}

	authorIds := make([]uuid.UUID, 0, len(recipes))
	recipeIds := make([]uuid.UUID, 0, len(recipes))
	seen := make(map[uuid.UUID]struct{}, len(recipes))
	for _, r := range recipes {
		recipeIds = append(recipeIds, r.Id)
		if _, ok := seen[r.AuthorId]; !ok {
			seen[r.AuthorId] = struct{}{}
			authorIds = append(authorIds, r.AuthorId)
		}
	}

	authors, err := s.userRepo.FindByIds(ctx, authorIds)
	if err != nil {
		return nil, err
	}
	authorsById := make(map[uuid.UUID]entities.User, len(authors))
	for _, a := range authors {
		authorsById[a.Id] = a
	}

	followed := map[uuid.UUID]bool{}
	flags := map[uuid.UUID]entities.RecipeFlags{}
	if viewerId != nil {
		if followed, err = s.followRepo.FollowedAmong(ctx, *viewerId, authorIds); err != nil {
			return nil, err
		}
		if flags, err = s.relationRepo.Flags(ctx, *viewerId, recipeIds); err != nil {
			return nil, err
		}
	}

	results := make([]*common.RecipeResult, 0, len(recipes))
	for _, r := range recipes {
		author, ok := authorsById[r.AuthorId]
		if !ok {
			author = entities.User{Id: r.AuthorId}
		}
		details := entities.RecipeDetails{
			Recipe:           r,
			Author:           entities.UserProfile{User: author, IsSubscribed: followed[r.AuthorId]},
			IsFavorited:      flags[r.Id].IsFavorited,
			IsInShoppingCart: flags[r.Id].IsInShoppingCart,
		}
		results = append(results, mapper.NewRecipeResultFromDetails(&details))
	}
	return results, nil
}

func (s *RecipeService) discardImage(ctx context.Context, ref string) {
	if err := s.images.Delete(ctx, ref); err != nil {
		s.log.Warn("failed to delete stored image", "image", ref, "error", err)
	}
}

func (s *RecipeService) publish(ctx context.Context, event string, payload interface{}) {
	if err := s.events.Publish(ctx, event, payload); err != nil {
		s.log.Warn("failed to publish event", "event", event, "error", err)
	}
}
