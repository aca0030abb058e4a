package service

import (
	"context"

	"go-clinic-booking/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// Audit actions
const (
	AuditActionUserCreate           = "user.create"
	AuditActionUserDelete           = "user.delete"
	AuditActionSpecializationCreate = "specialization.create"
	AuditActionSpecializationDelete = "specialization.delete"
	AuditActionDoctorCreate         = "doctor.create"
	AuditActionDoctorDelete         = "doctor.delete"
	AuditActionAppointmentCreate    = "appointment.create"
	AuditActionAppointmentStatus    = "appointment.status"
	AuditActionAppointmentDelete    = "appointment.delete"
	AuditActionCertificateCreate    = "certificate.create"
	AuditActionCertificateStatus    = "certificate.status"
	AuditActionCertificateDelete    = "certificate.delete"
)

// AuditService records every mutation of the store as a structured log entry.
type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID int64, newValue interface{})
	LogStatusChange(ctx context.Context, actor entity.Actor, action string, entityName string, entityID int64, oldStatus, newStatus string)
	LogDelete(ctx context.Context, action string, entityName string, entityID int64, oldValue interface{})
}

type auditService struct {
	log *logrus.Logger
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{log: log}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID int64, newValue interface{}) {
	s.log.WithContext(ctx).WithFields(logrus.Fields{
		"audit":     true,
		"action":    action,
		"entity":    entityName,
		"entity_id": entityID,
		"new_value": newValue,
	}).Info("audit")
}

// LogStatusChange logs a status transition together with who performed it
func (s *auditService) LogStatusChange(ctx context.Context, actor entity.Actor, action string, entityName string, entityID int64, oldStatus, newStatus string) {
	fields := logrus.Fields{
		"audit":      true,
		"action":     action,
		"entity":     entityName,
		"entity_id":  entityID,
		"old_value":  oldStatus,
		"new_value":  newStatus,
		"actor_role": string(actor.Role),
	}
	if actor.Role == entity.ActorRoleUser {
		fields["actor_user_id"] = actor.UserID
	}
	s.log.WithContext(ctx).WithFields(fields).Info("audit")
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, action string, entityName string, entityID int64, oldValue interface{}) {
	s.log.WithContext(ctx).WithFields(logrus.Fields{
		"audit":     true,
		"action":    action,
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
	}).Info("audit")
}
