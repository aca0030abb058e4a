package repository

import (
	"context"
	"iter"

	"go-clinic-booking/internal/domain/entity"
)

type HealthCertificateRepository interface {
	Create(ctx context.Context, certificate *entity.HealthCertificate) error
	FindByID(ctx context.Context, id int64) (*entity.HealthCertificate, error)
	List(ctx context.Context, filter entity.CertificateFilter) iter.Seq2[entity.HealthCertificate, error]
	UpdateStatus(ctx context.Context, id int64, from, next entity.CertificateStatus) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
