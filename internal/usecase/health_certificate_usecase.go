package usecase

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/pkg/apperror"
	"go-clinic-booking/pkg/validator"

	"github.com/sirupsen/logrus"
)

type HealthCertificateUsecase interface {
	CreateHealthCertificate(ctx context.Context, req *dto.CreateHealthCertificateRequest) (*dto.HealthCertificateResponse, error)
	GetHealthCertificate(ctx context.Context, certificateID int64) (*dto.HealthCertificateResponse, error)
	ListHealthCertificates(ctx context.Context, filter entity.CertificateFilter) iter.Seq2[dto.HealthCertificateResponse, error]
	UpdateHealthCertificateStatus(ctx context.Context, certificateID int64, req *dto.UpdateStatusRequest, actor entity.Actor) (*dto.HealthCertificateResponse, error)
	DeleteHealthCertificate(ctx context.Context, certificateID int64) error
}

type healthCertificateUsecase struct {
	log             *logrus.Logger
	validator       *validator.CustomValidator
	certificateRepo repository.HealthCertificateRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewHealthCertificateUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	certificateRepo repository.HealthCertificateRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) HealthCertificateUsecase {
	return &healthCertificateUsecase{
		log:             log,
		validator:       validator,
		certificateRepo: certificateRepo,
		userRepo:        userRepo,
		auditService:    auditService,
		now:             utcNow,
	}
}

func (u *healthCertificateUsecase) CreateHealthCertificate(ctx context.Context, req *dto.CreateHealthCertificateRequest) (*dto.HealthCertificateResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	req.Description = strings.TrimSpace(req.Description)
	if err := u.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewReference(fmt.Sprintf("user %d does not exist", req.UserID))
	}

	certificate := &entity.HealthCertificate{
		UserID:      req.UserID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      entity.CertificateStatusPending,
		CreatedAt:   u.now(),
	}
	if err := u.certificateRepo.Create(ctx, certificate); err != nil {
		u.log.WithContext(ctx).Warnf("Failed to create health certificate: %+v", err)
		return nil, err
	}

	response := converter.HealthCertificateToResponse(certificate)
	u.auditService.LogCreate(ctx, service.AuditActionCertificateCreate, "health_certificate", certificate.ID, response)
	return response, nil
}

func (u *healthCertificateUsecase) GetHealthCertificate(ctx context.Context, certificateID int64) (*dto.HealthCertificateResponse, error) {
	certificate, err := u.find(ctx, certificateID)
	if err != nil {
		return nil, err
	}
	return converter.HealthCertificateToResponse(certificate), nil
}

func (u *healthCertificateUsecase) ListHealthCertificates(ctx context.Context, filter entity.CertificateFilter) iter.Seq2[dto.HealthCertificateResponse, error] {
	return converter.MapSeq(u.certificateRepo.List(ctx, filter), converter.HealthCertificateToResponse)
}

// UpdateHealthCertificateStatus lets staff approve or reject a pending request.
func (u *healthCertificateUsecase) UpdateHealthCertificateStatus(ctx context.Context, certificateID int64, req *dto.UpdateStatusRequest, actor entity.Actor) (*dto.HealthCertificateResponse, error) {
	if err := u.validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	next, err := entity.ParseCertificateStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, apperror.NewValidation(err.Error(), map[string]string{"status": "status must be one of: pending approved rejected"})
	}

	certificate, err := u.find(ctx, certificateID)
	if err != nil {
		return nil, err
	}

	current := certificate.Status
	if !current.CanTransitionTo(next) {
		return nil, apperror.NewInvalidTransition(fmt.Sprintf("health certificate %d cannot move from %s to %s", certificateID, current, next))
	}
	if !actor.IsStaff() {
		return nil, apperror.NewForbidden(fmt.Sprintf("only staff may set health certificate %d to %s", certificateID, next))
	}

	affected, err := u.certificateRepo.UpdateStatus(ctx, certificateID, current, next)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to update health certificate %d status: %+v", certificateID, err)
		return nil, err
	}
	if affected == 0 {
		latest, err := u.certificateRepo.FindByID(ctx, certificateID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, certificateNotFound(certificateID)
		}
		return nil, apperror.NewConflict(fmt.Sprintf("health certificate %d changed concurrently: expected %s, found %s", certificateID, current, latest.Status))
	}

	certificate.Status = next
	u.auditService.LogStatusChange(ctx, actor, service.AuditActionCertificateStatus, "health_certificate", certificateID, string(current), string(next))
	return converter.HealthCertificateToResponse(certificate), nil
}

func (u *healthCertificateUsecase) DeleteHealthCertificate(ctx context.Context, certificateID int64) error {
	certificate, err := u.find(ctx, certificateID)
	if err != nil {
		return err
	}

	affected, err := u.certificateRepo.Delete(ctx, certificateID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to delete health certificate %d: %+v", certificateID, err)
		return err
	}
	if affected == 0 {
		return certificateNotFound(certificateID)
	}

	u.auditService.LogDelete(ctx, service.AuditActionCertificateDelete, "health_certificate", certificateID, converter.HealthCertificateToResponse(certificate))
	return nil
}

func (u *healthCertificateUsecase) find(ctx context.Context, certificateID int64) (*entity.HealthCertificate, error) {
	certificate, err := u.certificateRepo.FindByID(ctx, certificateID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to find health certificate %d: %+v", certificateID, err)
		return nil, err
	}
	if certificate == nil {
		return nil, certificateNotFound(certificateID)
	}
	return certificate, nil
}

func certificateNotFound(certificateID int64) error {
	return apperror.NewNotFound(fmt.Sprintf("health certificate %d not found", certificateID))
}
