package usecase

import (
	"context"
	"io"
	"iter"
	"slices"
	"strings"
	"sync"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/pkg/apperror"
	"go-clinic-booking/pkg/validator"

	"github.com/sirupsen/logrus"
)

// memoryDB mimics the constraints of the PostgreSQL schema in memory.
type memoryDB struct {
	mu              sync.Mutex
	nextID          int64
	users           map[int64]entity.User
	specializations map[int64]entity.Specialization
	doctors         map[int64]entity.Doctor
	appointments    map[int64]entity.Appointment
	certificates    map[int64]entity.HealthCertificate
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:           map[int64]entity.User{},
		specializations: map[int64]entity.Specialization{},
		doctors:         map[int64]entity.Doctor{},
		appointments:    map[int64]entity.Appointment{},
		certificates:    map[int64]entity.HealthCertificate{},
	}
}

func (m *memoryDB) id() int64 {
	m.nextID++
	return m.nextID
}

func sortedValues[T any](rows map[int64]T, keep func(T) bool) []T {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if keep(rows[id]) {
			out = append(out, rows[id])
		}
	}
	return out
}

func seqOf[T any](load func() []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, row := range load() {
			if !yield(row, nil) {
				return
			}
		}
	}
}

func (m *memoryDB) Repositories() Repositories {
	return Repositories{
		Users:              &memoryUsers{m},
		Specializations:    &memorySpecializations{m},
		Doctors:            &memoryDoctors{m},
		Appointments:       &memoryAppointments{db: m},
		HealthCertificates: &memoryCertificates{m},
	}
}

type memoryUsers struct{ db *memoryDB }

func (r *memoryUsers) Create(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Email == user.Email {
			return apperror.NewUniqueness("email already registered")
		}
	}
	user.ID = r.db.id()
	r.db.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	user, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memoryUsers) List(_ context.Context, filter entity.UserFilter) iter.Seq2[entity.User, error] {
	return seqOf(func() []entity.User {
		r.db.mu.Lock()
		defer r.db.mu.Unlock()
		return sortedValues(r.db.users, func(u entity.User) bool {
			return (filter.Email == "" || u.Email == filter.Email) &&
				(filter.MessengerID == "" || u.MessengerID == filter.MessengerID)
		})
	})
}

func (r *memoryUsers) Delete(_ context.Context, id int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return 0, nil
	}
	delete(r.db.users, id)
	return 1, nil
}

type memorySpecializations struct{ db *memoryDB }

func (r *memorySpecializations) Create(_ context.Context, specialization *entity.Specialization) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.specializations {
		if existing.Name == specialization.Name {
			return apperror.NewUniqueness("specialization already exists")
		}
	}
	specialization.ID = r.db.id()
	r.db.specializations[specialization.ID] = *specialization
	return nil
}

func (r *memorySpecializations) FindByID(_ context.Context, id int64) (*entity.Specialization, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	specialization, ok := r.db.specializations[id]
	if !ok {
		return nil, nil
	}
	return &specialization, nil
}

func (r *memorySpecializations) List(_ context.Context, filter entity.SpecializationFilter) iter.Seq2[entity.Specialization, error] {
	return seqOf(func() []entity.Specialization {
		r.db.mu.Lock()
		defer r.db.mu.Unlock()
		return sortedValues(r.db.specializations, func(s entity.Specialization) bool {
			return strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name))
		})
	})
}

func (r *memorySpecializations) Delete(_ context.Context, id int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.specializations[id]; !ok {
		return 0, nil
	}
	delete(r.db.specializations, id)
	return 1, nil
}

type memoryDoctors struct{ db *memoryDB }

func (r *memoryDoctors) Create(_ context.Context, doctor *entity.Doctor) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.specializations[doctor.SpecializationID]; !ok {
		return apperror.NewReference("specialization does not exist")
	}
	doctor.ID = r.db.id()
	r.db.doctors[doctor.ID] = *doctor
	return nil
}

func (r *memoryDoctors) FindByID(_ context.Context, id int64) (*entity.Doctor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	doctor, ok := r.db.doctors[id]
	if !ok {
		return nil, nil
	}
	return &doctor, nil
}

func (r *memoryDoctors) List(_ context.Context, filter entity.DoctorFilter) iter.Seq2[entity.Doctor, error] {
	return seqOf(func() []entity.Doctor {
		r.db.mu.Lock()
		defer r.db.mu.Unlock()
		return sortedValues(r.db.doctors, func(d entity.Doctor) bool {
			if filter.SpecializationID != nil && d.SpecializationID != *filter.SpecializationID {
				return false
			}
			if filter.Online != nil && d.Offers(entity.ContactMethodOnline) != *filter.Online {
				return false
			}
			if filter.InPerson != nil && d.Offers(entity.ContactMethodInPerson) != *filter.InPerson {
				return false
			}
			return strings.Contains(strings.ToLower(d.Name), strings.ToLower(filter.Name))
		})
	})
}

func (r *memoryDoctors) CountBySpecialization(_ context.Context, specializationID int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, d := range r.db.doctors {
		if d.SpecializationID == specializationID {
			n++
		}
	}
	return n, nil
}

func (r *memoryDoctors) Delete(_ context.Context, id int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.doctors[id]; !ok {
		return 0, nil
	}
	for _, a := range r.db.appointments {
		if a.DoctorID == id {
			return 0, apperror.NewDependencyExists("doctor still has appointments")
		}
	}
	delete(r.db.doctors, id)
	return 1, nil
}

type memoryAppointments struct {
	db *memoryDB
	// beforeUpdate runs ahead of every guarded update when set.
	beforeUpdate func()
}

func (r *memoryAppointments) Create(_ context.Context, appointment *entity.Appointment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[appointment.UserID]; !ok {
		return apperror.NewReference("user does not exist")
	}
	if _, ok := r.db.doctors[appointment.DoctorID]; !ok {
		return apperror.NewReference("doctor does not exist")
	}
	appointment.ID = r.db.id()
	r.db.appointments[appointment.ID] = *appointment
	return nil
}

func (r *memoryAppointments) FindByID(_ context.Context, id int64) (*entity.Appointment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	appointment, ok := r.db.appointments[id]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *memoryAppointments) List(_ context.Context, filter entity.AppointmentFilter) iter.Seq2[entity.Appointment, error] {
	return seqOf(func() []entity.Appointment {
		r.db.mu.Lock()
		defer r.db.mu.Unlock()
		return sortedValues(r.db.appointments, func(a entity.Appointment) bool {
			return (filter.UserID == nil || a.UserID == *filter.UserID) &&
				(filter.DoctorID == nil || a.DoctorID == *filter.DoctorID) &&
				(filter.Status == nil || a.Status == *filter.Status)
		})
	})
}

func (r *memoryAppointments) UpdateStatus(_ context.Context, id int64, from, next entity.AppointmentStatus) (int64, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	appointment, ok := r.db.appointments[id]
	if !ok || appointment.Status != from {
		return 0, nil
	}
	appointment.Status = next
	r.db.appointments[id] = appointment
	return 1, nil
}

func (r *memoryAppointments) CountByUser(_ context.Context, userID int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, a := range r.db.appointments {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memoryAppointments) CountByDoctor(_ context.Context, doctorID int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, a := range r.db.appointments {
		if a.DoctorID == doctorID {
			n++
		}
	}
	return n, nil
}

func (r *memoryAppointments) Delete(_ context.Context, id int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.db.appointments, id)
	return 1, nil
}

type memoryCertificates struct{ db *memoryDB }

func (r *memoryCertificates) Create(_ context.Context, certificate *entity.HealthCertificate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[certificate.UserID]; !ok {
		return apperror.NewReference("user does not exist")
	}
	certificate.ID = r.db.id()
	r.db.certificates[certificate.ID] = *certificate
	return nil
}

func (r *memoryCertificates) FindByID(_ context.Context, id int64) (*entity.HealthCertificate, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	certificate, ok := r.db.certificates[id]
	if !ok {
		return nil, nil
	}
	return &certificate, nil
}

func (r *memoryCertificates) List(_ context.Context, filter entity.CertificateFilter) iter.Seq2[entity.HealthCertificate, error] {
	return seqOf(func() []entity.HealthCertificate {
		r.db.mu.Lock()
		defer r.db.mu.Unlock()
		return sortedValues(r.db.certificates, func(c entity.HealthCertificate) bool {
			return (filter.UserID == nil || c.UserID == *filter.UserID) &&
				(filter.Status == nil || c.Status == *filter.Status)
		})
	})
}

func (r *memoryCertificates) UpdateStatus(_ context.Context, id int64, from, next entity.CertificateStatus) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	certificate, ok := r.db.certificates[id]
	if !ok || certificate.Status != from {
		return 0, nil
	}
	certificate.Status = next
	r.db.certificates[id] = certificate
	return 1, nil
}

func (r *memoryCertificates) CountByUser(_ context.Context, userID int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, c := range r.db.certificates {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memoryCertificates) Delete(_ context.Context, id int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.certificates[id]; !ok {
		return 0, nil
	}
	delete(r.db.certificates, id)
	return 1, nil
}

func newTestStore(db *memoryDB) *Store {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewStore(log, validator.NewValidator(), db.Repositories(), nil, service.NewAuditService(log))
}
