package handler

import (
	"net/http"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
)

type SpecializationHandler struct {
	specializationUsecase usecase.SpecializationUsecase
}

func NewSpecializationHandler(specializationUsecase usecase.SpecializationUsecase) *SpecializationHandler {
	return &SpecializationHandler{
		specializationUsecase: specializationUsecase,
	}
}

func (h *SpecializationHandler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecializationRequest
	if err := decodeBody(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	specialization, err := h.specializationUsecase.CreateSpecialization(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Specialization created successfully", specialization)
}

func (h *SpecializationHandler) GetSpecialization(w http.ResponseWriter, r *http.Request) {
	specializationID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	specialization, err := h.specializationUsecase.GetSpecialization(r.Context(), specializationID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Specialization retrieved successfully", specialization)
}

func (h *SpecializationHandler) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	order, err := queryOrder(q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	specializations, err := converter.Collect(h.specializationUsecase.ListSpecializations(r.Context(), entity.SpecializationFilter{
		Name:  q.Get("name"),
		Order: order,
	}))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Specializations retrieved successfully", dto.SpecializationListResponse{
		Specializations: specializations,
		Total:           len(specializations),
	})
}

func (h *SpecializationHandler) DeleteSpecialization(w http.ResponseWriter, r *http.Request) {
	specializationID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.specializationUsecase.DeleteSpecialization(r.Context(), specializationID); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Specialization deleted successfully", nil)
}
