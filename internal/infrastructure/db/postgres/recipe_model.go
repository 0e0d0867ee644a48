package postgres

import (
	"time"

	"github.com/google/uuid"
)

type RecipeModel struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Author      UserModel `gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
	Name        string                  `gorm:"size:200;not null"`
	Image       string                  `gorm:"not null"`
	Text        string                  `gorm:"not null"`
	CookingTime int                     `gorm:"not null;check:cooking_time >= 1"`
	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeId;constraint:OnDelete:CASCADE"`
	Tags        []RecipeTagModel        `gorm:"foreignKey:RecipeId;constraint:OnDelete:CASCADE"`
}

func (RecipeModel) TableName() string {
	return "recipes"
}

type RecipeIngredientModel struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RecipeId     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredients_pair"`
	IngredientId uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredients_pair;index"`
	Ingredient   IngredientModel `gorm:"foreignKey:IngredientId;constraint:OnDelete:RESTRICT"`
	Amount       int             `gorm:"not null;check:amount >= 1"`
}

func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

type RecipeTagModel struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_tags_pair"`
	TagId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_tags_pair;index"`
	Tag      TagModel  `gorm:"foreignKey:TagId;constraint:OnDelete:CASCADE"`
}

func (RecipeTagModel) TableName() string {
	return "recipe_tags"
}
