package handler

import (
	"net/http"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := decodeBody(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// ListDoctors supports specialization_id, name, in_person, online and order.
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.DoctorFilter{Name: q.Get("name")}

	var err error
	if filter.SpecializationID, err = queryInt64(q, "specialization_id"); err != nil {
		response.FromError(w, err)
		return
	}
	if filter.InPerson, err = queryBool(q, "in_person"); err != nil {
		response.FromError(w, err)
		return
	}
	if filter.Online, err = queryBool(q, "online"); err != nil {
		response.FromError(w, err)
		return
	}
	if filter.Order, err = queryOrder(q); err != nil {
		response.FromError(w, err)
		return
	}

	doctors, err := converter.Collect(h.doctorUsecase.ListDoctors(r.Context(), filter))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	})
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), doctorID); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}
