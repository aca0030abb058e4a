package repository

import (
	"context"
	"iter"

	"go-clinic-booking/internal/domain/entity"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id int64) (*entity.Appointment, error)
	List(ctx context.Context, filter entity.AppointmentFilter) iter.Seq2[entity.Appointment, error]
	// UpdateStatus sets next only while the row still holds from.
	// It returns the number of rows changed (0 or 1).
	UpdateStatus(ctx context.Context, id int64, from, next entity.AppointmentStatus) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountByDoctor(ctx context.Context, doctorID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
