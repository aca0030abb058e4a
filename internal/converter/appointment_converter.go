package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		UserID:          appointment.UserID,
		DoctorID:        appointment.DoctorID,
		AppointmentType: appointment.AppointmentType,
		ContactMethod:   string(appointment.ContactMethod),
		Description:     appointment.Description,
		Status:          string(appointment.Status),
		CreatedAt:       appointment.CreatedAt.UTC(),
	}
}
