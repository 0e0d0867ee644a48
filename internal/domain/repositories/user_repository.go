package repositories

import (
	"context"

	"github.com/google/uuid"

	"foodgram-service/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
}
