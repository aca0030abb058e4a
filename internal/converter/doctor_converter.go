package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                doctor.ID,
		Name:              doctor.Name,
		SpecializationID:  doctor.SpecializationID,
		InPersonAvailable: doctor.Offers(entity.ContactMethodInPerson),
		OnlineAvailable:   doctor.Offers(entity.ContactMethodOnline),
	}
}
