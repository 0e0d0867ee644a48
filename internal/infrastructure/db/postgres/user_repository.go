package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
)

type UserRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepository(db *gorm.DB, baseLog *logger.Logger) repositories.UserRepository {
	return &UserRepository{db: db, log: baseLog.With("repo", "UserRepository")}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	userModel := UserModel{
		Id:        user.Id,
		CreatedAt: user.CreatedAt,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return nil, translateError(err, "user not found")
	}

	return r.FindById(ctx, user.Id)
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, translateError(err, "user not found")
	}

	return r.mapToEntity(&userModel), nil
}

func (r *UserRepository) FindByIds(ctx context.Context, ids []uuid.UUID) ([]entities.User, error) {
	if len(ids) == 0 {
		return []entities.User{}, nil
	}
	var userModels []UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, *r.mapToEntity(&userModels[i]))
	}
	return users, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, translateError(err, "user not found")
	}

	return r.mapToEntity(&userModel), nil
}

func (r *UserRepository) mapToEntity(userModel *UserModel) *entities.User {
	return &entities.User{
		Id:        userModel.Id,
		CreatedAt: userModel.CreatedAt,
		Email:     userModel.Email,
		Username:  userModel.Username,
		FirstName: userModel.FirstName,
		LastName:  userModel.LastName,
	}
}
