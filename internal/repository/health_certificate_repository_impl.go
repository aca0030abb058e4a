package repository

import (
	"context"
	"errors"
	"iter"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type healthCertificateRepository struct {
	db *gorm.DB
}

func NewHealthCertificateRepository(db *gorm.DB) domainRepo.HealthCertificateRepository {
	return &healthCertificateRepository{db: db}
}

func (r *healthCertificateRepository) Create(ctx context.Context, certificate *entity.HealthCertificate) error {
	return translateError(r.db.WithContext(ctx).Create(certificate).Error, opWrite)
}

func (r *healthCertificateRepository) FindByID(ctx context.Context, id int64) (*entity.HealthCertificate, error) {
	var certificate entity.HealthCertificate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&certificate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, opRead)
	}
	return &certificate, nil
}

func (r *healthCertificateRepository) List(ctx context.Context, filter entity.CertificateFilter) iter.Seq2[entity.HealthCertificate, error] {
	return stream[entity.HealthCertificate](ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			tx = tx.Where("user_id = ?", *filter.UserID)
		}
		if filter.Status != nil {
			tx = tx.Where("status = ?", *filter.Status)
		}
		return applyOrder(tx, "created_at", filter.Order)
	})
}

func (r *healthCertificateRepository) UpdateStatus(ctx context.Context, id int64, from, next entity.CertificateStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.HealthCertificate{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", next)
	return result.RowsAffected, translateError(result.Error, opWrite)
}

func (r *healthCertificateRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.HealthCertificate{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, translateError(err, opRead)
}

func (r *healthCertificateRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.HealthCertificate{})
	return result.RowsAffected, translateError(result.Error, opDelete)
}
