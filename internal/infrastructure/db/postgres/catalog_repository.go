package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
)

type TagRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepository(db *gorm.DB, baseLog *logger.Logger) repositories.TagRepository {
	return &TagRepository{db: db, log: baseLog.With("repo", "TagRepository")}
}

func (r *TagRepository) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	tagModel := TagModel{Id: tag.Id, Name: tag.Name, Color: tag.Color, Slug: tag.Slug}
	if err := r.db.WithContext(ctx).Create(&tagModel).Error; err != nil {
		return nil, translateError(err, "tag not found")
	}
	return mapTag(&tagModel), nil
}

func (r *TagRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.Tag, error) {
	var tagModel TagModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tagModel).Error; err != nil {
		return nil, translateError(err, "tag not found")
	}
	return mapTag(&tagModel), nil
}

func (r *TagRepository) FindBySlug(ctx context.Context, slug string) (*entities.Tag, error) {
	var tagModel TagModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tagModel).Error; err != nil {
		return nil, translateError(err, "tag not found")
	}
	return mapTag(&tagModel), nil
}

func (r *TagRepository) FindByIds(ctx context.Context, ids []uuid.UUID) ([]entities.Tag, error) {
	if len(ids) == 0 {
		return []entities.Tag{}, nil
	}
	var tagModels []TagModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tagModels).Error; err != nil {
		return nil, err
	}
	return mapTags(tagModels), nil
}

func (r *TagRepository) List(ctx context.Context) ([]entities.Tag, error) {
	var tagModels []TagModel
	if err := r.db.WithContext(ctx).Order("name").Find(&tagModels).Error; err != nil {
		return nil, err
	}
	return mapTags(tagModels), nil
}

type IngredientRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepository(db *gorm.DB, baseLog *logger.Logger) repositories.IngredientRepository {
	return &IngredientRepository{db: db, log: baseLog.With("repo", "IngredientRepository")}
}

func (r *IngredientRepository) Create(ctx context.Context, ingredient *entities.Ingredient) (*entities.Ingredient, error) {
	model := IngredientModel{Id: ingredient.Id, Name: ingredient.Name, MeasurementUnit: ingredient.MeasurementUnit}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, translateError(err, "ingredient not found")
	}
	return mapIngredient(&model), nil
}

func (r *IngredientRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	var model IngredientModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "ingredient not found")
	}
	return mapIngredient(&model), nil
}

func (r *IngredientRepository) FindByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	var model IngredientModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, translateError(err, "ingredient not found")
	}
	return mapIngredient(&model), nil
}

func (r *IngredientRepository) FindByIds(ctx context.Context, ids []uuid.UUID) ([]entities.Ingredient, error) {
	if len(ids) == 0 {
		return []entities.Ingredient{}, nil
	}
	var models []IngredientModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]entities.Ingredient, 0, len(models))
	for i := range models {
		result = append(result, *mapIngredient(&models[i]))
	}
	return result, nil
}

func (r *IngredientRepository) List(ctx context.Context, namePrefix string) ([]entities.Ingredient, error) {
	query := r.db.WithContext(ctx).Order("name")
	if prefix := strings.TrimSpace(namePrefix); prefix != "" {
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(prefix)+"%")
	}
	var models []IngredientModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]entities.Ingredient, 0, len(models))
	for i := range models {
		result = append(result, *mapIngredient(&models[i]))
	}
	return result, nil
}

func mapTag(m *TagModel) *entities.Tag {
	return &entities.Tag{Id: m.Id, Name: m.Name, Color: m.Color, Slug: m.Slug}
}

func mapTags(models []TagModel) []entities.Tag {
	tags := make([]entities.Tag, 0, len(models))
	for i := range models {
		tags = append(tags, *mapTag(&models[i]))
	}
	return tags
}

func mapIngredient(m *IngredientModel) *entities.Ingredient {
	return &entities.Ingredient{Id: m.Id, Name: m.Name, MeasurementUnit: m.MeasurementUnit}
}
