package http

import (
	"context"
	"net/http"

	"go-clinic-booking/internal/delivery/http/handler"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/pkg/apperror"
	"go-clinic-booking/pkg/response"

	"github.com/gorilla/mux"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker func(ctx context.Context) error

type Router struct {
	router                *mux.Router
	userHandler           *handler.UserHandler
	specializationHandler *handler.SpecializationHandler
	doctorHandler         *handler.DoctorHandler
	appointmentHandler    *handler.AppointmentHandler
	certificateHandler    *handler.HealthCertificateHandler
	actorMiddleware       *middleware.ActorMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	loggingMiddleware     *middleware.LoggingMiddleware
	health                HealthChecker
}

func NewRouter(
	userHandler *handler.UserHandler,
	specializationHandler *handler.SpecializationHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	certificateHandler *handler.HealthCertificateHandler,
	actorMiddleware *middleware.ActorMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	health HealthChecker,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		userHandler:           userHandler,
		specializationHandler: specializationHandler,
		doctorHandler:         doctorHandler,
		appointmentHandler:    appointmentHandler,
		certificateHandler:    certificateHandler,
		actorMiddleware:       actorMiddleware,
		corsMiddleware:        corsMiddleware,
		loggingMiddleware:     loggingMiddleware,
		health:                health,
	}
}

// Setup registers the routes and returns the root handler. CORS and request
// logging wrap the router itself because mux only runs middleware on matched
// routes, and a preflight OPTIONS request never matches one.
func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.actorMiddleware.Identify)

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Users
	api.HandleFunc("/users", r.userHandler.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users", r.userHandler.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", r.userHandler.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", r.userHandler.DeleteUser).Methods(http.MethodDelete)

	// Catalog reads (public)
	api.HandleFunc("/specializations", r.specializationHandler.ListSpecializations).Methods(http.MethodGet)
	api.HandleFunc("/specializations/{id:[0-9]+}", r.specializationHandler.GetSpecialization).Methods(http.MethodGet)
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Catalog management (staff only)
	staff := api.NewRoute().Subrouter()
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/specializations", r.specializationHandler.CreateSpecialization).Methods(http.MethodPost)
	staff.HandleFunc("/specializations/{id:[0-9]+}", r.specializationHandler.DeleteSpecialization).Methods(http.MethodDelete)
	staff.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	staff.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Appointments
	api.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{id:[0-9]+}/status", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPatch)

	// Health certificates
	api.HandleFunc("/health-certificates", r.certificateHandler.CreateHealthCertificate).Methods(http.MethodPost)
	api.HandleFunc("/health-certificates", r.certificateHandler.ListHealthCertificates).Methods(http.MethodGet)
	api.HandleFunc("/health-certificates/{id:[0-9]+}", r.certificateHandler.GetHealthCertificate).Methods(http.MethodGet)
	api.HandleFunc("/health-certificates/{id:[0-9]+}", r.certificateHandler.DeleteHealthCertificate).Methods(http.MethodDelete)
	api.HandleFunc("/health-certificates/{id:[0-9]+}/status", r.certificateHandler.UpdateHealthCertificateStatus).Methods(http.MethodPatch)

	return r.loggingMiddleware.Handle(r.corsMiddleware.Handle(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	if r.health != nil {
		if err := r.health(req.Context()); err != nil {
			response.FromError(w, apperror.NewStorageUnavailable("database unreachable", err))
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
