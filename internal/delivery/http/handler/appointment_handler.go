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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := decodeBody(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter entity.AppointmentFilter

	var err error
	if filter.UserID, err = queryInt64(q, "user_id"); err != nil {
		response.FromError(w, err)
		return
	}
	if filter.DoctorID, err = queryInt64(q, "doctor_id"); err != nil {
		response.FromError(w, err)
		return
	}
	if raw := q.Get("status"); raw != "" {
		status, err := entity.ParseAppointmentStatus(raw)
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

	appointments, err := converter.Collect(h.appointmentUsecase.ListAppointments(r.Context(), filter))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", dto.AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	})
}

func (h *AppointmentHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r)
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

	appointment, err := h.appointmentUsecase.UpdateAppointmentStatus(r.Context(), appointmentID, &req, actor)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), appointmentID); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
