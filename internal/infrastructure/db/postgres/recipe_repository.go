package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodgram-service/internal/domain/domainerr"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
)

type RecipeRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepository(db *gorm.DB, baseLog *logger.Logger) repositories.RecipeRepository {
	return &RecipeRepository{db: db, log: baseLog.With("repo", "RecipeRepository")}
}

func (r *RecipeRepository) Create(ctx context.Context, validated *entities.ValidatedRecipe) (*entities.Recipe, error) {
	recipe := validated.GetRecipe()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferences(tx, recipe.IngredientIds(), recipe.TagIds()); err != nil {
			return err
		}

		recipeModel := RecipeModel{
			Id:          recipe.Id,
			AuthorId:    recipe.AuthorId,
			CreatedAt:   recipe.CreatedAt,
			UpdatedAt:   recipe.UpdatedAt,
			Name:        recipe.Name,
			Image:       recipe.Image,
			Text:        recipe.Text,
			CookingTime: recipe.CookingTime,
		}
		if err := tx.Omit(clause.Associations).Create(&recipeModel).Error; err != nil {
			return translateError(err, "author not found")
		}

		return insertAssociations(tx, recipe.Id, recipe.Ingredients, recipe.Tags)
	})
	if err != nil {
		r.log.Debug("recipe create rolled back", "recipe_id", recipe.Id, "error", err)
		return nil, err
	}

	return r.FindById(ctx, recipe.Id)
}

func (r *RecipeRepository) Update(ctx context.Context, actorId, recipeId uuid.UUID, validated *entities.ValidatedRecipePatch) (*entities.Recipe, error) {
	patch := validated.GetPatch()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeModel RecipeModel
		if err := tx.Where("id = ?", recipeId).First(&recipeModel).Error; err != nil {
			return translateError(err, "recipe not found")
		}

		recipe := mapRecipe(&recipeModel)
		if err := recipe.EnsureOwnedBy(actorId); err != nil {
			return err
		}

		patch.ApplyTo(recipe)
		err := tx.Model(&RecipeModel{}).Where("id = ?", recipeId).Updates(map[string]interface{}{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
			"image":        recipe.Image,
			"updated_at":   recipe.UpdatedAt,
		}).Error
		if err != nil {
			return translateError(err, "recipe not found")
		}

		return writeAssociations(tx, recipeId, recipe.Ingredients, recipe.Tags)
	})
	if err != nil {
		return nil, err
	}

	return r.FindById(ctx, recipeId)
}

// ReplaceAssociations swaps the ingredient and tag sets of a recipe owned by actorId.
func (r *RecipeRepository) ReplaceAssociations(ctx context.Context, actorId, recipeId uuid.UUID, validated *entities.ValidatedAssociations) error {
	associations := validated.GetAssociations()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeModel RecipeModel
		if err := tx.Where("id = ?", recipeId).First(&recipeModel).Error; err != nil {
			return translateError(err, "recipe not found")
		}
		if err := mapRecipe(&recipeModel).EnsureOwnedBy(actorId); err != nil {
			return err
		}

		if err := writeAssociations(tx, recipeId, associations.Ingredients, associations.Tags); err != nil {
			return err
		}
		return tx.Model(&RecipeModel{}).Where("id = ?", recipeId).Update("updated_at", time.Now()).Error
	})
}

func (r *RecipeRepository) Delete(ctx context.Context, actorId, recipeId uuid.UUID) (*entities.Recipe, error) {
	var deleted *entities.Recipe

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeModel RecipeModel
		if err := tx.Where("id = ?", recipeId).First(&recipeModel).Error; err != nil {
			return translateError(err, "recipe not found")
		}

		recipe := mapRecipe(&recipeModel)
		if err := recipe.EnsureOwnedBy(actorId); err != nil {
			return err
		}

		// Cascades cover these on both stores; deleting explicitly keeps the
		// outcome independent of whether foreign keys are enforced.
		for _, dependent := range []interface{}{&RecipeIngredientModel{}, &RecipeTagModel{}, &FavoriteModel{}, &CartModel{}} {
			if err := tx.Where("recipe_id = ?", recipeId).Delete(dependent).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&RecipeModel{}, "id = ?", recipeId).Error; err != nil {
			return err
		}

		deleted = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *RecipeRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipeModel RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		Where("id = ?", id).
		First(&recipeModel).Error
	if err != nil {
		return nil, translateError(err, "recipe not found")
	}
	return mapRecipe(&recipeModel), nil
}

func (r *RecipeRepository) List(ctx context.Context, filter entities.RecipeFilter) ([]entities.Recipe, int64, error) {
	base := func() *gorm.DB {
		session := r.db.WithContext(ctx)
		query := session.Model(&RecipeModel{})
		if filter.AuthorId != nil {
			query = query.Where("author_id = ?", *filter.AuthorId)
		}
		if len(filter.TagSlugs) > 0 {
			tagged := session.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs)
			query = query.Where("id IN (?)", tagged)
		}
		if filter.FavoritedBy != nil {
			favorites := session.Model(&FavoriteModel{}).Select("recipe_id").Where("user_id = ?", *filter.FavoritedBy)
			query = query.Where("id IN (?)", favorites)
		}
		if filter.InCartOf != nil {
			cart := session.Model(&CartModel{}).Select("recipe_id").Where("user_id = ?", *filter.InCartOf)
			query = query.Where("id IN (?)", cart)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipeModels []RecipeModel
	query := base().
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		Order("created_at DESC").
		Order("id")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&recipeModels).Error; err != nil {
		return nil, 0, err
	}

	recipes := make([]entities.Recipe, 0, len(recipeModels))
	for i := range recipeModels {
		recipes = append(recipes, *mapRecipe(&recipeModels[i]))
	}
	return recipes, total, nil
}

// ListSummariesByAuthor returns the author's newest recipes. A negative
// limit returns all of them.
func (r *RecipeRepository) ListSummariesByAuthor(ctx context.Context, authorId uuid.UUID, limit int) ([]entities.RecipeSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Where("author_id = ?", authorId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit < 0 {
		limit = -1
	}
	var recipeModels []RecipeModel
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorId).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Find(&recipeModels).Error
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]entities.RecipeSummary, 0, len(recipeModels))
	for i := range recipeModels {
		summaries = append(summaries, mapRecipe(&recipeModels[i]).Summary())
	}
	return summaries, total, nil
}

// ensureReferences fails with Conflict on a repeated id and NotFound on a
// missing one.
func ensureReferences(tx *gorm.DB, ingredientIds, tagIds []uuid.UUID) error {
	if err := ensureExist(tx, &IngredientModel{}, ingredientIds, "ingredient"); err != nil {
		return err
	}
	return ensureExist(tx, &TagModel{}, tagIds, "tag")
}

func ensureExist(tx *gorm.DB, model interface{}, ids []uuid.UUID, label string) error {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return domainerr.Conflict(fmt.Sprintf("duplicate %s %s", label, id), nil)
		}
		seen[id] = struct{}{}
	}

	var count int64
	if err := tx.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return domainerr.NotFound(label + " not found")
	}
	return nil
}

// writeAssociations checks the referenced rows, then replaces both sets.
func writeAssociations(tx *gorm.DB, recipeId uuid.UUID, ingredients []entities.RecipeIngredient, tags []entities.Tag) error {
	ingredientIds := make([]uuid.UUID, 0, len(ingredients))
	for _, ri := range ingredients {
		ingredientIds = append(ingredientIds, ri.IngredientId)
	}
	if err := ensureReferences(tx, ingredientIds, tagIdsOf(tags)); err != nil {
		return err
	}
	return replaceAssociations(tx, recipeId, ingredients, tags)
}

func tagIdsOf(tags []entities.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.Id)
	}
	return ids
}

func replaceAssociations(tx *gorm.DB, recipeId uuid.UUID, ingredients []entities.RecipeIngredient, tags []entities.Tag) error {
	if err := tx.Where("recipe_id = ?", recipeId).Delete(&RecipeIngredientModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipeId).Delete(&RecipeTagModel{}).Error; err != nil {
		return err
	}
	return insertAssociations(tx, recipeId, ingredients, tags)
}

func insertAssociations(tx *gorm.DB, recipeId uuid.UUID, ingredients []entities.RecipeIngredient, tags []entities.Tag) error {
	if len(ingredients) > 0 {
		rows := make([]RecipeIngredientModel, 0, len(ingredients))
		for _, ri := range ingredients {
			rows = append(rows, RecipeIngredientModel{
				Id:           uuid.New(),
				RecipeId:     recipeId,
				IngredientId: ri.IngredientId,
				Amount:       ri.Amount,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return translateError(err, "ingredient not found")
		}
	}
	if len(tags) > 0 {
		rows := make([]RecipeTagModel, 0, len(tags))
		for _, t := range tags {
			rows = append(rows, RecipeTagModel{Id: uuid.New(), RecipeId: recipeId, TagId: t.Id})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return translateError(err, "tag not found")
		}
	}
	return nil
}

func mapRecipe(m *RecipeModel) *entities.Recipe {
	recipe := &entities.Recipe{
		Id:          m.Id,
		AuthorId:    m.AuthorId,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Name:        m.Name,
		Image:       m.Image,
		Text:        m.Text,
		CookingTime: m.CookingTime,
		Ingredients: make([]entities.RecipeIngredient, 0, len(m.Ingredients)),
		Tags:        make([]entities.Tag, 0, len(m.Tags)),
	}
	for _, ri := range m.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, entities.RecipeIngredient{
			IngredientId:    ri.IngredientId,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	for _, rt := range m.Tags {
		recipe.Tags = append(recipe.Tags, *mapTag(&rt.Tag))
	}
	sort.SliceStable(recipe.Ingredients, func(i, j int) bool {
		return recipe.Ingredients[i].Name < recipe.Ingredients[j].Name
	})
	sort.SliceStable(recipe.Tags, func(i, j int) bool {
		return recipe.Tags[i].Name < recipe.Tags[j].Name
	})
	return recipe
}
