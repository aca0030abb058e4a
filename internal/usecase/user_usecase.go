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

type UserUsecase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, filter entity.UserFilter) iter.Seq2[dto.UserResponse, error]
	DeleteUser(ctx context.Context, userID int64) error
}

type userUsecase struct {
	log             *logrus.Logger
	validator       *validator.CustomValidator
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	certificateRepo repository.HealthCertificateRepository
	auditService    service.AuditService
}

func NewUserUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	certificateRepo repository.HealthCertificateRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		log:             log,
		validator:       validator,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		certificateRepo: certificateRepo,
		auditService:    auditService,
	}
}

func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	req.MessengerID = strings.TrimSpace(req.MessengerID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := u.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	user := &entity.User{
		MessengerID: req.MessengerID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		u.log.WithContext(ctx).Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	response := converter.UserToResponse(user)
	u.auditService.LogCreate(ctx, service.AuditActionUserCreate, "user", user.ID, response)
	return response, nil
}

func (u *userUsecase) GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to find user %d: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, userNotFound(userID)
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) ListUsers(ctx context.Context, filter entity.UserFilter) iter.Seq2[dto.UserResponse, error] {
	return converter.MapSeq(u.userRepo.List(ctx, filter), converter.UserToResponse)
}

// DeleteUser removes a user that has no appointments or certificates.
func (u *userUsecase) DeleteUser(ctx context.Context, userID int64) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to find user %d: %+v", userID, err)
		return err
	}
	if user == nil {
		return userNotFound(userID)
	}

	appointments, err := u.appointmentRepo.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	certificates, err := u.certificateRepo.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if appointments > 0 || certificates > 0 {
		return apperror.NewDependencyExists(fmt.Sprintf(
			"user %d still has %d appointment(s) and %d health certificate(s)", userID, appointments, certificates))
	}

	affected, err := u.userRepo.Delete(ctx, userID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to delete user %d: %+v", userID, err)
		return err
	}
	if affected == 0 {
		return userNotFound(userID)
	}

	u.auditService.LogDelete(ctx, service.AuditActionUserDelete, "user", userID, converter.UserToResponse(user))
	return nil
}

func userNotFound(userID int64) error {
	return apperror.NewNotFound(fmt.Sprintf("user %d not found", userID))
}
