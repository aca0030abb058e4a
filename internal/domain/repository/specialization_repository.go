package repository

import (
	"context"
	"iter"

	"go-clinic-booking/internal/domain/entity"
)

type SpecializationRepository interface {
	Create(ctx context.Context, specialization *entity.Specialization) error
	FindByID(ctx context.Context, id int64) (*entity.Specialization, error)
	List(ctx context.Context, filter entity.SpecializationFilter) iter.Seq2[entity.Specialization, error]
	Delete(ctx context.Context, id int64) (int64, error)
}
