package postgres

import (
	"time"

	"github.com/google/uuid"
)

type FavoriteModel struct {
	Id        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	User      UserModel   `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	RecipeId  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe;index"`
	Recipe    RecipeModel `gorm:"foreignKey:RecipeId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

type CartModel struct {
	Id        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_carts_user_recipe"`
	User      UserModel   `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	RecipeId  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_carts_user_recipe;index"`
	Recipe    RecipeModel `gorm:"foreignKey:RecipeId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

type FollowModel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_user_author"`
	User      UserModel `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	AuthorId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_user_author;index;check:user_id <> author_id"`
	Author    UserModel `gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (FollowModel) TableName() string {
	return "follows"
}
