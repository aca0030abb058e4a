package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

func HealthCertificateToResponse(certificate *entity.HealthCertificate) *dto.HealthCertificateResponse {
	if certificate == nil {
		return nil
	}

	return &dto.HealthCertificateResponse{
		ID:          certificate.ID,
		UserID:      certificate.UserID,
		Reason:      certificate.Reason,
		Description: certificate.Description,
		Status:      string(certificate.Status),
		CreatedAt:   certificate.CreatedAt.UTC(),
	}
}
