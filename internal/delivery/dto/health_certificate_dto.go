package dto

import "time"

type CreateHealthCertificateRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
}

type HealthCertificateResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Reason      string    `json:"reason"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type HealthCertificateListResponse struct {
	Certificates []HealthCertificateResponse `json:"certificates"`
	Total        int                         `json:"total"`
}
