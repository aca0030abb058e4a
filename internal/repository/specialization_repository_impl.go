package repository

import (
	"context"
	"errors"
	"iter"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type specializationRepository struct {
	db *gorm.DB
}

func NewSpecializationRepository(db *gorm.DB) domainRepo.SpecializationRepository {
	return &specializationRepository{db: db}
}

func (r *specializationRepository) Create(ctx context.Context, specialization *entity.Specialization) error {
	return translateError(r.db.WithContext(ctx).Create(specialization).Error, opWrite)
}

func (r *specializationRepository) FindByID(ctx context.Context, id int64) (*entity.Specialization, error) {
	var specialization entity.Specialization
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&specialization).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, opRead)
	}
	return &specialization, nil
}

func (r *specializationRepository) List(ctx context.Context, filter entity.SpecializationFilter) iter.Seq2[entity.Specialization, error] {
	return stream[entity.Specialization](ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			tx = tx.Where(`name ILIKE ? ESCAPE '\'`, containsPattern(filter.Name))
		}
		return applyOrder(tx, "id", filter.Order)
	})
}

func (r *specializationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Specialization{})
	return result.RowsAffected, translateError(result.Error, opDelete)
}
