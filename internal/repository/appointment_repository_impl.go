package repository

import (
	"context"
	"errors"
	"iter"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return translateError(r.db.WithContext(ctx).Create(appointment).Error, opWrite)
}

func (r *appointmentRepository) FindByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, opRead)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter entity.AppointmentFilter) iter.Seq2[entity.Appointment, error] {
	return stream[entity.Appointment](ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			tx = tx.Where("user_id = ?", *filter.UserID)
		}
		if filter.DoctorID != nil {
			tx = tx.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.Status != nil {
			tx = tx.Where("status = ?", *filter.Status)
		}
		return applyOrder(tx, "created_at", filter.Order)
	})
}

// UpdateStatus atomically moves the appointment from -> next.
// Returns affected rows: 1 = success, 0 = the row no longer holds from.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, from, next entity.AppointmentStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", next)
	return result.RowsAffected, translateError(result.Error, opWrite)
}

func (r *appointmentRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, translateError(err, opRead)
}

func (r *appointmentRepository) CountByDoctor(ctx context.Context, doctorID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Count(&total).Error
	return total, translateError(err, opRead)
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, translateError(result.Error, opDelete)
}
