package usecase

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/pkg/apperror"
	"go-clinic-booking/pkg/validator"

	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID int64) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, filter entity.DoctorFilter) iter.Seq2[dto.DoctorResponse, error]
	DeleteDoctor(ctx context.Context, doctorID int64) error
}

type doctorUsecase struct {
	log                *logrus.Logger
	validator          *validator.CustomValidator
	doctorRepo         repository.DoctorRepository
	specializationRepo repository.SpecializationRepository
	appointmentRepo    repository.AppointmentRepository
	cache              *service.CatalogCache
	auditService       service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	doctorRepo repository.DoctorRepository,
	specializationRepo repository.SpecializationRepository,
	appointmentRepo repository.AppointmentRepository,
	cache *service.CatalogCache,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:                log,
		validator:          validator,
		doctorRepo:         doctorRepo,
		specializationRepo: specializationRepo,
		appointmentRepo:    appointmentRepo,
		cache:              cache,
		auditService:       auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := u.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	specialization, err := u.specializationRepo.FindByID(ctx, req.SpecializationID)
	if err != nil {
		return nil, err
	}
	if specialization == nil {
		return nil, apperror.NewReference(fmt.Sprintf("specialization %d does not exist", req.SpecializationID))
	}

	doctor := &entity.Doctor{
		Name:              req.Name,
		SpecializationID:  req.SpecializationID,
		InPersonAvailable: boolOrDefault(req.InPersonAvailable),
		OnlineAvailable:   boolOrDefault(req.OnlineAvailable),
	}
	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		u.log.WithContext(ctx).Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	response := converter.DoctorToResponse(doctor)
	u.auditService.LogCreate(ctx, service.AuditActionDoctorCreate, "doctor", doctor.ID, response)
	return response, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID int64) (*dto.DoctorResponse, error) {
	doctor, err := u.find(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, filter entity.DoctorFilter) iter.Seq2[dto.DoctorResponse, error] {
	return converter.MapSeq(u.doctorRepo.List(ctx, filter), converter.DoctorToResponse)
}

// DeleteDoctor removes a doctor with no appointments.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, doctorID int64) error {
	doctor, err := u.find(ctx, doctorID)
	if err != nil {
		return err
	}

	appointments, err := u.appointmentRepo.CountByDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	if appointments > 0 {
		return apperror.NewDependencyExists(fmt.Sprintf("doctor %d still has %d appointment(s)", doctorID, appointments))
	}

	affected, err := u.doctorRepo.Delete(ctx, doctorID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to delete doctor %d: %+v", doctorID, err)
		return err
	}
	u.cache.Invalidate(ctx, service.DoctorCacheKey(doctorID))
	if affected == 0 {
		return doctorNotFound(doctorID)
	}

	u.auditService.LogDelete(ctx, service.AuditActionDoctorDelete, "doctor", doctorID, converter.DoctorToResponse(doctor))
	return nil
}

func (u *doctorUsecase) find(ctx context.Context, doctorID int64) (*entity.Doctor, error) {
	doctor, err := service.FetchCached(ctx, u.cache, service.DoctorCacheKey(doctorID),
		func(ctx context.Context) (*entity.Doctor, error) {
			return u.doctorRepo.FindByID(ctx, doctorID)
		})
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, doctorNotFound(doctorID)
	}
	return doctor, nil
}

func doctorNotFound(doctorID int64) error {
	return apperror.NewNotFound(fmt.Sprintf("doctor %d not found", doctorID))
}

// Unset availability flags default to available.
func boolOrDefault(v *bool) *bool {
	if v != nil {
		return v
	}
	available := true
	return &available
}
