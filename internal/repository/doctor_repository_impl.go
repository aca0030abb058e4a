package repository

import (
	"context"
	"errors"
	"iter"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return translateError(r.db.WithContext(ctx).Create(doctor).Error, opWrite)
}

func (r *doctorRepository) FindByID(ctx context.Context, id int64) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, opRead)
	}
	return &doctor, nil
}

// List supports optional filters: specialization, name (ILIKE) and the
// availability flags.
func (r *doctorRepository) List(ctx context.Context, filter entity.DoctorFilter) iter.Seq2[entity.Doctor, error] {
	return stream[entity.Doctor](ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		if filter.SpecializationID != nil {
			tx = tx.Where("specialization_id = ?", *filter.SpecializationID)
		}
		if filter.Name != "" {
			tx = tx.Where(`name ILIKE ? ESCAPE '\'`, containsPattern(filter.Name))
		}
		if filter.InPerson != nil {
			tx = tx.Where("in_person_available = ?", *filter.InPerson)
		}
		if filter.Online != nil {
			tx = tx.Where("online_available = ?", *filter.Online)
		}
		return applyOrder(tx, "id", filter.Order)
	})
}

func (r *doctorRepository) CountBySpecialization(ctx context.Context, specializationID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("specialization_id = ?", specializationID).
		Count(&total).Error
	return total, translateError(err, opRead)
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, translateError(result.Error, opDelete)
}
