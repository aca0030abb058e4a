package repository

import (
	"context"
	"iter"

	"go-clinic-booking/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	List(ctx context.Context, filter entity.UserFilter) iter.Seq2[entity.User, error]
	Delete(ctx context.Context, id int64) (int64, error)
}
