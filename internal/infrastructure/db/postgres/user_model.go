package postgres

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	Email     string `gorm:"size:254;uniqueIndex;not null"`
	Username  string `gorm:"size:150;uniqueIndex;not null"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
}

func (UserModel) TableName() string {
	return "users"
}
