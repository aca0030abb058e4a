package handler

import (
	"net/http"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/apperror"
	"go-clinic-booking/pkg/response"
)

type HealthCertificateHandler struct {
	certificateUsecase usecase.HealthCertificateUsecase
}

func NewHealthCertificateHandler(certificateUsecase usecase.HealthCertificateUsecase) *HealthCertificateHandler {
	return &HealthCertificateHandler{
		certificateUsecase: certificateUsecase,
	}
}

func (h *HealthCertificateHandler) CreateHealthCertificate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHealthCertificateRequest
	if err := decodeBody(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	certificate, err := h.certificateUsecase.CreateHealthCertificate(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Health certificate created successfully", certificate)
}

func (h *HealthCertificateHandler) GetHealthCertificate(w http.ResponseWriter, r *http.Request) {
	certificateID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	certificate, err := h.certificateUsecase.GetHealthCertificate(r.Context(), certificateID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Health certificate retrieved successfully", certificate)
}

func (h *HealthCertificateHandler) ListHealthCertificates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter entity.CertificateFilter

	var err error
	if filter.UserID, err = queryInt64(q, "user_id"); err != nil {
		response.FromError(w, err)
		return
	}
	if raw := q.Get("status"); raw != "" {
		status, err := entity.ParseCertificateStatus(raw)
		if err != nil {
			response.FromError(w, apperror.NewValidation(err.Error(), map[string]string{"status": "unknown status"}))
			return
		}
		filter.Status = &status
	}
	if filter.Order, err = queryOrder(q); err != nil {
		response.FromError(w, err)
		return
	}

	certificates, err := converter.Collect(h.certificateUsecase.ListHealthCertificates(r.Context(), filter))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Health certificates retrieved successfully", dto.HealthCertificateListResponse{
		Certificates: certificates,
		Total:        len(certificates),
	})
}

func (h *HealthCertificateHandler) UpdateHealthCertificateStatus(w http.ResponseWriter, r *http.Request) {
	certificateID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Actor headers are required")
		return
	}

	var req dto.UpdateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	certificate, err := h.certificateUsecase.UpdateHealthCertificateStatus(r.Context(), certificateID, &req, actor)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Health certificate status updated successfully", certificate)
}

func (h *HealthCertificateHandler) DeleteHealthCertificate(w http.ResponseWriter, r *http.Request) {
	certificateID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.certificateUsecase.DeleteHealthCertificate(r.Context(), certificateID); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Health certificate deleted successfully", nil)
}
