package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	UserID          int64  `json:"user_id" validate:"required,gt=0"`
	DoctorID        int64  `json:"doctor_id" validate:"required,gt=0"`
	AppointmentType string `json:"appointment_type" validate:"required,max=100"`
	ContactMethod   string `json:"contact_method" validate:"required,oneof=in_person online"`
	Description     string `json:"description" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	DoctorID        int64     `json:"doctor_id"`
	AppointmentType string    `json:"appointment_type"`
	ContactMethod   string    `json:"contact_method"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
