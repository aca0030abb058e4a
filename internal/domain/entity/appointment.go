package entity

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// AppointmentStatuses lists every valid appointment status.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusRejected,
	AppointmentStatusCanceled,
}

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending: {
		AppointmentStatusConfirmed,
		AppointmentStatusRejected,
		AppointmentStatusCanceled,
	},
}

// ParseAppointmentStatus converts raw input into a known status.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
	return status, nil
}

func (s AppointmentStatus) Valid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// CanTransitionTo checks the edge s -> next against the transition table.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ContactMethod is how the patient meets the doctor.
type ContactMethod string

const (
	ContactMethodInPerson ContactMethod = "in_person"
	ContactMethodOnline   ContactMethod = "online"
)

// Appointment represents a booking request from a user to a doctor
type Appointment struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64             `gorm:"not null;index" json:"user_id"`
	DoctorID        int64             `gorm:"not null;index" json:"doctor_id"`
	AppointmentType string            `gorm:"type:varchar(100);not null" json:"appointment_type"`
	ContactMethod   ContactMethod     `gorm:"type:varchar(50);not null" json:"contact_method"`
	Description     string            `gorm:"type:text;not null" json:"description"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if appointment is awaiting a decision
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}
