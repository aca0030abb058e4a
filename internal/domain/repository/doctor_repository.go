package repository

import (
	"context"
	"iter"

	"go-clinic-booking/internal/domain/entity"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id int64) (*entity.Doctor, error)
	List(ctx context.Context, filter entity.DoctorFilter) iter.Seq2[entity.Doctor, error]
	CountBySpecialization(ctx context.Context, specializationID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
