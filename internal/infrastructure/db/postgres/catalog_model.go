package postgres

import "github.com/google/uuid"

type TagModel struct {
	Id    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"size:200;uniqueIndex;not null"`
	Color string    `gorm:"size:7;not null"`
	Slug  string    `gorm:"size:200;uniqueIndex;not null"`
}

func (TagModel) TableName() string {
	return "tags"
}

type IngredientModel struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"size:200;uniqueIndex;not null"`
	MeasurementUnit string    `gorm:"size:200;not null"`
}

func (IngredientModel) TableName() string {
	return "ingredients"
}
