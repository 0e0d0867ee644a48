package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodgram-service/internal/domain/domainerr"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
)

// RelationRepository stores favorites and cart entries. Adds rely on the
// (user_id, recipe_id) unique index; no read-before-write.
type RelationRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationRepository(db *gorm.DB, baseLog *logger.Logger) repositories.RelationRepository {
	return &RelationRepository{db: db, log: baseLog.With("repo", "RelationRepository")}
}

func (r *RelationRepository) Add(ctx context.Context, kind entities.RelationKind, userId, recipeId uuid.UUID) error {
	row, err := newRelationRow(kind, userId, recipeId)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		err = translateError(err, "recipe not found")
		if domainerr.Is(err, domainerr.KindConflict) {
			return domainerr.Conflict(fmt.Sprintf("recipe is already in %s", kindLabel(kind)), err)
		}
		return err
	}
	return nil
}

func (r *RelationRepository) Remove(ctx context.Context, kind entities.RelationKind, userId, recipeId uuid.UUID) error {
	model, err := relationModel(kind)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userId, recipeId).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerr.NotFound(fmt.Sprintf("recipe is not in %s", kindLabel(kind)))
	}
	return nil
}

func (r *RelationRepository) Exists(ctx context.Context, kind entities.RelationKind, userId, recipeId uuid.UUID) (bool, error) {
	model, err := relationModel(kind)
	if err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("user_id = ? AND recipe_id = ?", userId, recipeId).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Flags resolves both markers for a page of recipes with one query per table.
func (r *RelationRepository) Flags(ctx context.Context, userId uuid.UUID, recipeIds []uuid.UUID) (map[uuid.UUID]entities.RecipeFlags, error) {
	flags := make(map[uuid.UUID]entities.RecipeFlags, len(recipeIds))
	if len(recipeIds) == 0 {
		return flags, nil
	}

	var favorited []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("user_id = ? AND recipe_id IN ?", userId, recipeIds).
		Pluck("recipe_id", &favorited).Error; err != nil {
		return nil, err
	}
	var inCart []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&CartModel{}).
		Where("user_id = ? AND recipe_id IN ?", userId, recipeIds).
		Pluck("recipe_id", &inCart).Error; err != nil {
		return nil, err
	}

	for _, id := range favorited {
		f := flags[id]
		f.IsFavorited = true
		flags[id] = f
	}
	for _, id := range inCart {
		f := flags[id]
		f.IsInShoppingCart = true
		flags[id] = f
	}
	return flags, nil
}

func newRelationRow(kind entities.RelationKind, userId, recipeId uuid.UUID) (interface{}, error) {
	now := time.Now()
	switch kind {
	case entities.RelationFavorite:
		return &FavoriteModel{Id: uuid.New(), UserId: userId, RecipeId: recipeId, CreatedAt: now}, nil
	case entities.RelationShoppingCart:
		return &CartModel{Id: uuid.New(), UserId: userId, RecipeId: recipeId, CreatedAt: now}, nil
	}
	return nil, domainerr.InvalidArgument(fmt.Sprintf("unknown relation %q", kind))
}

func relationModel(kind entities.RelationKind) (interface{}, error) {
	switch kind {
	case entities.RelationFavorite:
		return &FavoriteModel{}, nil
	case entities.RelationShoppingCart:
		return &CartModel{}, nil
	}
	return nil, domainerr.InvalidArgument(fmt.Sprintf("unknown relation %q", kind))
}

func kindLabel(kind entities.RelationKind) string {
	if kind == entities.RelationShoppingCart {
		return "the shopping cart"
	}
	return "favorites"
}

type FollowRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFollowRepository(db *gorm.DB, baseLog *logger.Logger) repositories.FollowRepository {
	return &FollowRepository{db: db, log: baseLog.With("repo", "FollowRepository")}
}

func (r *FollowRepository) Add(ctx context.Context, follow *entities.Follow) error {
	row := FollowModel{
		Id:        uuid.New(),
		UserId:    follow.UserId,
		AuthorId:  follow.AuthorId,
		CreatedAt: follow.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		err = translateError(err, "author not found")
		if domainerr.Is(err, domainerr.KindConflict) {
			return domainerr.Conflict("already subscribed to this author", err)
		}
		return err
	}
	return nil
}

func (r *FollowRepository) Remove(ctx context.Context, userId, authorId uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND author_id = ?", userId, authorId).Delete(&FollowModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerr.NotFound("not subscribed to this author")
	}
	return nil
}

func (r *FollowRepository) IsFollowing(ctx context.Context, userId, authorId uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&FollowModel{}).
		Where("user_id = ? AND author_id = ?", userId, authorId).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FollowRepository) FollowedAmong(ctx context.Context, userId uuid.UUID, authorIds []uuid.UUID) (map[uuid.UUID]bool, error) {
	followed := make(map[uuid.UUID]bool, len(authorIds))
	if len(authorIds) == 0 {
		return followed, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&FollowModel{}).
		Where("user_id = ? AND author_id IN ?", userId, authorIds).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}

func (r *FollowRepository) ListAuthors(ctx context.Context, userId uuid.UUID, limit, offset int) ([]entities.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&FollowModel{}).Where("user_id = ?", userId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Select("users.*").
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userId).
		Order("follows.created_at DESC").
		Order("users.id")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	var userModels []UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]entities.User, 0, len(userModels))
	for i := range userModels {
		m := &userModels[i]
		users = append(users, entities.User{
			Id:        m.Id,
			CreatedAt: m.CreatedAt,
			Email:     m.Email,
			Username:  m.Username,
			FirstName: m.FirstName,
			LastName:  m.LastName,
		})
	}
	return users, total, nil
}
