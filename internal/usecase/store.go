package usecase

import (
	"time"

	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/pkg/validator"

	"github.com/sirupsen/logrus"
)

// Repositories groups the storage ports the store is built on.
type Repositories struct {
	Users              repository.UserRepository
	Specializations    repository.SpecializationRepository
	Doctors            repository.DoctorRepository
	Appointments       repository.AppointmentRepository
	HealthCertificates repository.HealthCertificateRepository
}

// Store is the domain store: one usecase per entity type.
type Store struct {
	Users              UserUsecase
	Specializations    SpecializationUsecase
	Doctors            DoctorUsecase
	Appointments       AppointmentUsecase
	HealthCertificates HealthCertificateUsecase
}

func NewStore(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	repos Repositories,
	cache *service.CatalogCache,
	auditService service.AuditService,
) *Store {
	return &Store{
		Users:              NewUserUsecase(log, validator, repos.Users, repos.Appointments, repos.HealthCertificates, auditService),
		Specializations:    NewSpecializationUsecase(log, validator, repos.Specializations, repos.Doctors, cache, auditService),
		Doctors:            NewDoctorUsecase(log, validator, repos.Doctors, repos.Specializations, repos.Appointments, cache, auditService),
		Appointments:       NewAppointmentUsecase(log, validator, repos.Appointments, repos.Users, repos.Doctors, auditService),
		HealthCertificates: NewHealthCertificateUsecase(log, validator, repos.HealthCertificates, repos.Users, auditService),
	}
}

// utcNow matches the microsecond precision of a PostgreSQL timestamptz, so a
// returned record equals the one read back later.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
