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

type SpecializationUsecase interface {
	CreateSpecialization(ctx context.Context, req *dto.CreateSpecializationRequest) (*dto.SpecializationResponse, error)
	GetSpecialization(ctx context.Context, specializationID int64) (*dto.SpecializationResponse, error)
	ListSpecializations(ctx context.Context, filter entity.SpecializationFilter) iter.Seq2[dto.SpecializationResponse, error]
	DeleteSpecialization(ctx context.Context, specializationID int64) error
}

type specializationUsecase struct {
	log                *logrus.Logger
	validator          *validator.CustomValidator
	specializationRepo repository.SpecializationRepository
	doctorRepo         repository.DoctorRepository
	cache              *service.CatalogCache
	auditService       service.AuditService
}

func NewSpecializationUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	specializationRepo repository.SpecializationRepository,
	doctorRepo repository.DoctorRepository,
	cache *service.CatalogCache,
	auditService service.AuditService,
) SpecializationUsecase {
	return &specializationUsecase{
		log:                log,
		validator:          validator,
		specializationRepo: specializationRepo,
		doctorRepo:         doctorRepo,
		cache:              cache,
		auditService:       auditService,
	}
}

func (u *specializationUsecase) CreateSpecialization(ctx context.Context, req *dto.CreateSpecializationRequest) (*dto.SpecializationResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := u.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	specialization := &entity.Specialization{Name: req.Name}
	if err := u.specializationRepo.Create(ctx, specialization); err != nil {
		u.log.WithContext(ctx).Warnf("Failed to create specialization: %+v", err)
		return nil, err
	}

	response := converter.SpecializationToResponse(specialization)
	u.auditService.LogCreate(ctx, service.AuditActionSpecializationCreate, "specialization", specialization.ID, response)
	return response, nil
}

func (u *specializationUsecase) GetSpecialization(ctx context.Context, specializationID int64) (*dto.SpecializationResponse, error) {
	specialization, err := u.find(ctx, specializationID)
	if err != nil {
		return nil, err
	}
	return converter.SpecializationToResponse(specialization), nil
}

func (u *specializationUsecase) ListSpecializations(ctx context.Context, filter entity.SpecializationFilter) iter.Seq2[dto.SpecializationResponse, error] {
	return converter.MapSeq(u.specializationRepo.List(ctx, filter), converter.SpecializationToResponse)
}

// DeleteSpecialization removes a specialization no doctor belongs to.
func (u *specializationUsecase) DeleteSpecialization(ctx context.Context, specializationID int64) error {
	specialization, err := u.find(ctx, specializationID)
	if err != nil {
		return err
	}

	doctors, err := u.doctorRepo.CountBySpecialization(ctx, specializationID)
	if err != nil {
		return err
	}
	if doctors > 0 {
		return apperror.NewDependencyExists(fmt.Sprintf("specialization %d still has %d doctor(s)", specializationID, doctors))
	}

	affected, err := u.specializationRepo.Delete(ctx, specializationID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to delete specialization %d: %+v", specializationID, err)
		return err
	}
	u.cache.Invalidate(ctx, service.SpecializationCacheKey(specializationID))
	if affected == 0 {
		return specializationNotFound(specializationID)
	}

	u.auditService.LogDelete(ctx, service.AuditActionSpecializationDelete, "specialization", specializationID, converter.SpecializationToResponse(specialization))
	return nil
}

func (u *specializationUsecase) find(ctx context.Context, specializationID int64) (*entity.Specialization, error) {
	specialization, err := service.FetchCached(ctx, u.cache, service.SpecializationCacheKey(specializationID),
		func(ctx context.Context) (*entity.Specialization, error) {
			return u.specializationRepo.FindByID(ctx, specializationID)
		})
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to find specialization %d: %+v", specializationID, err)
		return nil, err
	}
	if specialization == nil {
		return nil, specializationNotFound(specializationID)
	}
	return specialization, nil
}

func specializationNotFound(specializationID int64) error {
	return apperror.NewNotFound(fmt.Sprintf("specialization %d not found", specializationID))
}
