package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"foodgram-service/internal/domain/domainerr"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&TagModel{},
		&IngredientModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&RecipeTagModel{},
		&FavoriteModel{},
		&CartModel{},
		&FollowModel{},
	)
}

// translateError maps store errors to domain errors. notFound is used for
// missing rows and for foreign keys that point nowhere.
func translateError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerr.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value"):
		return domainerr.Conflict("already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return domainerr.NotFound(notFound)
	case errors.Is(err, gorm.ErrCheckConstraintViolated),
		strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "violates check constraint"):
		return domainerr.InvalidArgument("value violates a store constraint")
	}
	return err
}
