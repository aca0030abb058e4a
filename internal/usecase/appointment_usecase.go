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

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID int64) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, filter entity.AppointmentFilter) iter.Seq2[dto.AppointmentResponse, error]
	UpdateAppointmentStatus(ctx context.Context, appointmentID int64, req *dto.UpdateStatusRequest, actor entity.Actor) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, appointmentID int64) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	validator       *validator.CustomValidator
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		validator:       validator,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
		now:             utcNow,
	}
}

// CreateAppointment books a pending appointment. Both parties must exist and
// the doctor must offer the requested contact method.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	req.AppointmentType = strings.TrimSpace(req.AppointmentType)
	req.ContactMethod = strings.TrimSpace(req.ContactMethod)
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

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NewReference(fmt.Sprintf("doctor %d does not exist", req.DoctorID))
	}

	method := entity.ContactMethod(req.ContactMethod)
	if !doctor.Offers(method) {
		return nil, apperror.NewValidation("doctor does not offer this contact method", map[string]string{
			"contact_method": fmt.Sprintf("doctor %d is not available %s", doctor.ID, strings.ReplaceAll(req.ContactMethod, "_", " ")),
		})
	}

	appointment := &entity.Appointment{
		UserID:          req.UserID,
		DoctorID:        req.DoctorID,
		AppointmentType: req.AppointmentType,
		ContactMethod:   method,
		Description:     req.Description,
		Status:          entity.AppointmentStatusPending,
		CreatedAt:       u.now(),
	}
	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.WithContext(ctx).Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	response := converter.AppointmentToResponse(appointment)
	u.auditService.LogCreate(ctx, service.AuditActionAppointmentCreate, "appointment", appointment.ID, response)
	return response, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID int64) (*dto.AppointmentResponse, error) {
	appointment, err := u.find(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, filter entity.AppointmentFilter) iter.Seq2[dto.AppointmentResponse, error] {
	return converter.MapSeq(u.appointmentRepo.List(ctx, filter), converter.AppointmentToResponse)
}

// UpdateAppointmentStatus moves a pending appointment to a terminal status.
// Concurrent updates race on the stored status; only one of them wins and
// the rest observe CONFLICT.
func (u *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, appointmentID int64, req *dto.UpdateStatusRequest, actor entity.Actor) (*dto.AppointmentResponse, error) {
	if err := u.validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	next, err := entity.ParseAppointmentStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, apperror.NewValidation(err.Error(), map[string]string{"status": "status must be one of: pending confirmed rejected canceled"})
	}

	appointment, err := u.find(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	current := appointment.Status
	if !current.CanTransitionTo(next) {
		return nil, apperror.NewInvalidTransition(fmt.Sprintf("appointment %d cannot move from %s to %s", appointmentID, current, next))
	}
	if err := authorizeAppointmentTransition(actor, appointment, next); err != nil {
		return nil, err
	}

	affected, err := u.appointmentRepo.UpdateStatus(ctx, appointmentID, current, next)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to update appointment %d status: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, u.lostUpdate(ctx, appointmentID, current)
	}

	appointment.Status = next
	u.auditService.LogStatusChange(ctx, actor, service.AuditActionAppointmentStatus, "appointment", appointmentID, string(current), string(next))
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	appointment, err := u.find(ctx, appointmentID)
	if err != nil {
		return err
	}

	affected, err := u.appointmentRepo.Delete(ctx, appointmentID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to delete appointment %d: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return appointmentNotFound(appointmentID)
	}

	u.auditService.LogDelete(ctx, service.AuditActionAppointmentDelete, "appointment", appointmentID, converter.AppointmentToResponse(appointment))
	return nil
}

func (u *appointmentUsecase) find(ctx context.Context, appointmentID int64) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, appointmentNotFound(appointmentID)
	}
	return appointment, nil
}

// lostUpdate explains why a guarded update matched no row.
func (u *appointmentUsecase) lostUpdate(ctx context.Context, appointmentID int64, expected entity.AppointmentStatus) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return appointmentNotFound(appointmentID)
	}
	return apperror.NewConflict(fmt.Sprintf("appointment %d changed concurrently: expected %s, found %s", appointmentID, expected, appointment.Status))
}

// Cancel belongs to the patient; confirm and reject belong to staff.
func authorizeAppointmentTransition(actor entity.Actor, appointment *entity.Appointment, next entity.AppointmentStatus) error {
	if next == entity.AppointmentStatusCanceled {
		if !actor.IsUser(appointment.UserID) {
			return apperror.NewForbidden(fmt.Sprintf("only user %d may cancel appointment %d", appointment.UserID, appointment.ID))
		}
		return nil
	}
	if !actor.IsStaff() {
		return apperror.NewForbidden(fmt.Sprintf("only staff may set appointment %d to %s", appointment.ID, next))
	}
	return nil
}

func appointmentNotFound(appointmentID int64) error {
	return apperror.NewNotFound(fmt.Sprintf("appointment %d not found", appointmentID))
}
