package dto

// Request DTOs

// CreateDoctorRequest leaves availability flags nil to accept the defaults.
type CreateDoctorRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	SpecializationID  int64  `json:"specialization_id" validate:"required,gt=0"`
	InPersonAvailable *bool  `json:"in_person_available" validate:"omitempty"`
	OnlineAvailable   *bool  `json:"online_available" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	SpecializationID  int64  `json:"specialization_id"`
	InPersonAvailable bool   `json:"in_person_available"`
	OnlineAvailable   bool   `json:"online_available"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
