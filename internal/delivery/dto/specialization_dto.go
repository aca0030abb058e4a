package dto

type CreateSpecializationRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type SpecializationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SpecializationListResponse struct {
	Specializations []SpecializationResponse `json:"specializations"`
	Total           int                      `json:"total"`
}
