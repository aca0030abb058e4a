package repository

import (
	"context"
	"errors"
	"iter"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error, opWrite)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, opRead)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter entity.UserFilter) iter.Seq2[entity.User, error] {
	return stream[entity.User](ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		if filter.Email != "" {
			tx = tx.Where("email = ?", filter.Email)
		}
		if filter.MessengerID != "" {
			tx = tx.Where("messenger_id = ?", filter.MessengerID)
		}
		return applyOrder(tx, "id", filter.Order)
	})
}

func (r *userRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	return result.RowsAffected, translateError(result.Error, opDelete)
}
