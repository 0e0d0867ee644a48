package services

import (
	"context"

	"github.com/google/uuid"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/mapper"
	"foodgram-service/internal/application/query"
	"foodgram-service/internal/application/validation"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
)

const (
	cacheKeyTags        = "catalog:tags"
	cacheKeyIngredients = "catalog:ingredients"
)

func tagCacheKey(id uuid.UUID) string        { return "catalog:tag:" + id.String() }
func ingredientCacheKey(id uuid.UUID) string { return "catalog:ingredient:" + id.String() }

type CatalogService struct {
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
	cache          interfaces.CatalogCache
	log            *logger.Logger
}

func NewCatalogService(
	tagRepo repositories.TagRepository,
	ingredientRepo repositories.IngredientRepository,
	cache interfaces.CatalogCache,
	baseLog *logger.Logger,
) interfaces.CatalogService {
	return &CatalogService{
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		cache:          cache,
		log:            baseLog.With("service", "CatalogService"),
	}
}

func (s *CatalogService) CreateTag(ctx context.Context, cmd *command.CreateTagCommand) (*command.CreateTagCommandResult, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	tag, err := entities.NewTag(cmd.Name, cmd.Color, cmd.Slug)
	if err != nil {
		return nil, err
	}

	created, err := s.tagRepo.Create(ctx, tag)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyTags)
	s.log.Info("tag created", "tag_id", created.Id, "slug", created.Slug)

	return &command.CreateTagCommandResult{Result: mapper.NewTagResultFromEntity(created)}, nil
}

func (s *CatalogService) ListTags(ctx context.Context) (*query.TagQueryListResult, error) {
	var tags []entities.Tag
	if !s.cache.Get(ctx, cacheKeyTags, &tags) {
		var err error
		tags, err = s.tagRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, cacheKeyTags, tags)
	}
	return &query.TagQueryListResult{Result: mapper.NewTagResultsFromEntities(tags)}, nil
}

func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*query.TagQueryResult, error) {
	var tag entities.Tag
	if !s.cache.Get(ctx, tagCacheKey(id), &tag) {
		found, err := s.tagRepo.FindById(ctx, id)
		if err != nil {
			return nil, err
		}
		tag = *found
		s.cache.Set(ctx, tagCacheKey(id), tag)
	}
	return &query.TagQueryResult{Result: mapper.NewTagResultFromEntity(&tag)}, nil
}

func (s *CatalogService) CreateIngredient(ctx context.Context, cmd *command.CreateIngredientCommand) (*command.CreateIngredientCommandResult, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	ingredient, err := entities.NewIngredient(cmd.Name, cmd.MeasurementUnit)
	if err != nil {
		return nil, err
	}

	created, err := s.ingredientRepo.Create(ctx, ingredient)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyIngredients)
	s.log.Info("ingredient created", "ingredient_id", created.Id)

	return &command.CreateIngredientCommandResult{Result: mapper.NewIngredientResultFromEntity(created)}, nil
}

// ListIngredients serves the unfiltered list from cache; prefix searches go
// to the store.
func (s *CatalogService) ListIngredients(ctx context.Context, namePrefix string) (*query.IngredientQueryListResult, error) {
	if namePrefix != "" {
		ingredients, err := s.ingredientRepo.List(ctx, namePrefix)
		if err != nil {
			return nil, err
		}
		return &query.IngredientQueryListResult{Result: mapper.NewIngredientResultsFromEntities(ingredients)}, nil
	}

	var ingredients []entities.Ingredient
	if !s.cache.Get(ctx, cacheKeyIngredients, &ingredients) {
		var err error
		ingredients, err = s.ingredientRepo.List(ctx, "")
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, cacheKeyIngredients, ingredients)
	}
	return &query.IngredientQueryListResult{Result: mapper.NewIngredientResultsFromEntities(ingredients)}, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*query.IngredientQueryResult, error) {
	var ingredient entities.Ingredient
	if !s.cache.Get(ctx, ingredientCacheKey(id), &ingredient) {
		found, err := s.ingredientRepo.FindById(ctx, id)
		if err != nil {
			return nil, err
		}
		ingredient = *found
		s.cache.Set(ctx, ingredientCacheKey(id), ingredient)
	}
	return &query.IngredientQueryResult{Result: mapper.NewIngredientResultFromEntity(&ingredient)}, nil
}
