package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/delivery/http/handler"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/pkg/apperror"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSpecializationUsecase struct {
	mock.Mock
}

func (m *mockSpecializationUsecase) CreateSpecialization(ctx context.Context, req *dto.CreateSpecializationRequest) (*dto.SpecializationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpecializationResponse), args.Error(1)
}

func (m *mockSpecializationUsecase) GetSpecialization(ctx context.Context, specializationID int64) (*dto.SpecializationResponse, error) {
	args := m.Called(ctx, specializationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpecializationResponse), args.Error(1)
}

func (m *mockSpecializationUsecase) ListSpecializations(ctx context.Context, filter entity.SpecializationFilter) iter.Seq2[dto.SpecializationResponse, error] {
	args := m.Called(ctx, filter)
	return args.Get(0).(iter.Seq2[dto.SpecializationResponse, error])
}

func (m *mockSpecializationUsecase) DeleteSpecialization(ctx context.Context, specializationID int64) error {
	return m.Called(ctx, specializationID).Error(0)
}

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, appointmentID int64) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context, filter entity.AppointmentFilter) iter.Seq2[dto.AppointmentResponse, error] {
	args := m.Called(ctx, filter)
	return args.Get(0).(iter.Seq2[dto.AppointmentResponse, error])
}

func (m *mockAppointmentUsecase) UpdateAppointmentStatus(ctx context.Context, appointmentID int64, req *dto.UpdateStatusRequest, actor entity.Actor) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, appointmentID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	return m.Called(ctx, appointmentID).Error(0)
}

func seqOf[T any](items ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

func newTestRouter(specializations *mockSpecializationUsecase, appointments *mockAppointmentUsecase, health HealthChecker) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewRouter(
		handler.NewUserHandler(nil),
		handler.NewSpecializationHandler(specializations),
		handler.NewDoctorHandler(nil),
		handler.NewAppointmentHandler(appointments),
		handler.NewHealthCertificateHandler(nil),
		middleware.NewActorMiddleware(),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggingMiddleware(log),
		health,
	).Setup()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Kind   string            `json:"kind"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func serve(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

var staffHeaders = map[string]string{middleware.HeaderActorRole: "staff"}

func TestCreateSpecialization_StaffOnly(t *testing.T) {
	specializations := new(mockSpecializationUsecase)
	specializations.On("CreateSpecialization", mock.Anything, &dto.CreateSpecializationRequest{Name: "Cardiology"}).
		Return(&dto.SpecializationResponse{ID: 1, Name: "Cardiology"}, nil).Once()
	router := newTestRouter(specializations, new(mockAppointmentUsecase), nil)

	rec, env := serve(t, router, http.MethodPost, "/api/v1/specializations", `{"name":"Cardiology"}`, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Kind)

	rec, _ = serve(t, router, http.MethodPost, "/api/v1/specializations", `{"name":"Cardiology"}`,
		map[string]string{middleware.HeaderActorRole: "user", middleware.HeaderUserID: "3"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = serve(t, router, http.MethodPost, "/api/v1/specializations", `{"name":"Cardiology"}`, staffHeaders)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":1,"name":"Cardiology"}`, string(env.Data))

	specializations.AssertExpectations(t)
}

func TestListSpecializations_Public(t *testing.T) {
	specializations := new(mockSpecializationUsecase)
	specializations.On("ListSpecializations", mock.Anything, entity.SpecializationFilter{Name: "card", Order: entity.SortAsc}).
		Return(seqOf(dto.SpecializationResponse{ID: 1, Name: "Cardiology"})).Once()
	router := newTestRouter(specializations, new(mockAppointmentUsecase), nil)

	rec, env := serve(t, router, http.MethodGet, "/api/v1/specializations?name=card&order=asc", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"specializations":[{"id":1,"name":"Cardiology"}],"total":1}`, string(env.Data))
	specializations.AssertExpectations(t)
}

func TestUpdateAppointmentStatus(t *testing.T) {
	t.Run("passes the actor through", func(t *testing.T) {
		appointments := new(mockAppointmentUsecase)
		appointments.On("UpdateAppointmentStatus", mock.Anything, int64(7), &dto.UpdateStatusRequest{Status: "canceled"}, entity.UserActor(3)).
			Return(&dto.AppointmentResponse{ID: 7, UserID: 3, Status: "canceled", CreatedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)}, nil).Once()
		router := newTestRouter(new(mockSpecializationUsecase), appointments, nil)

		rec, env := serve(t, router, http.MethodPatch, "/api/v1/appointments/7/status", `{"status":"canceled"}`,
			map[string]string{middleware.HeaderActorRole: "user", middleware.HeaderUserID: "3"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		appointments.AssertExpectations(t)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		appointments := new(mockAppointmentUsecase)
		appointments.On("UpdateAppointmentStatus", mock.Anything, int64(7), mock.Anything, entity.StaffActor()).
			Return(nil, apperror.NewConflict("appointment 7 changed concurrently")).Once()
		router := newTestRouter(new(mockSpecializationUsecase), appointments, nil)

		rec, env := serve(t, router, http.MethodPatch, "/api/v1/appointments/7/status", `{"status":"confirmed"}`, staffHeaders)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "CONFLICT", env.Error.Kind)
		appointments.AssertExpectations(t)
	})

	t.Run("requires an actor", func(t *testing.T) {
		appointments := new(mockAppointmentUsecase)
		router := newTestRouter(new(mockSpecializationUsecase), appointments, nil)

		rec, _ := serve(t, router, http.MethodPatch, "/api/v1/appointments/7/status", `{"status":"confirmed"}`, nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		appointments.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		router := newTestRouter(new(mockSpecializationUsecase), new(mockAppointmentUsecase), nil)

		rec, env := serve(t, router, http.MethodPatch, "/api/v1/appointments/7/status", `{"status":"confirmed"}`,
			map[string]string{middleware.HeaderActorRole: "admin"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION", env.Error.Kind)
	})

	t.Run("user role needs a user id", func(t *testing.T) {
		router := newTestRouter(new(mockSpecializationUsecase), new(mockAppointmentUsecase), nil)

		rec, _ := serve(t, router, http.MethodPatch, "/api/v1/appointments/7/status", `{"status":"canceled"}`,
			map[string]string{middleware.HeaderActorRole: "user", middleware.HeaderUserID: "abc"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newTestRouter(new(mockSpecializationUsecase), new(mockAppointmentUsecase), nil)

		rec, _ := serve(t, router, http.MethodPatch, "/api/v1/appointments/7/status", `{`, staffHeaders)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListAppointments_Filters(t *testing.T) {
	userID := int64(3)
	pending := entity.AppointmentStatusPending
	appointments := new(mockAppointmentUsecase)
	appointments.On("ListAppointments", mock.Anything, entity.AppointmentFilter{UserID: &userID, Status: &pending, Order: entity.SortDesc}).
		Return(seqOf(dto.AppointmentResponse{ID: 11, UserID: 3, Status: "pending"})).Once()
	router := newTestRouter(new(mockSpecializationUsecase), appointments, nil)

	rec, env := serve(t, router, http.MethodGet, "/api/v1/appointments?user_id=3&status=pending&order=desc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.AppointmentListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, int64(11), list.Appointments[0].ID)

	rec, env = serve(t, router, http.MethodGet, "/api/v1/appointments?status=done", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error.Fields, "status")

	rec, _ = serve(t, router, http.MethodGet, "/api/v1/appointments?user_id=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	appointments.AssertExpectations(t)
}

func TestListAppointments_StorageFailure(t *testing.T) {
	failing := func(yield func(dto.AppointmentResponse, error) bool) {
		yield(dto.AppointmentResponse{}, apperror.NewStorageUnavailable("connection refused", nil))
	}
	appointments := new(mockAppointmentUsecase)
	appointments.On("ListAppointments", mock.Anything, entity.AppointmentFilter{}).
		Return(iter.Seq2[dto.AppointmentResponse, error](failing)).Once()
	router := newTestRouter(new(mockSpecializationUsecase), appointments, nil)

	rec, env := serve(t, router, http.MethodGet, "/api/v1/appointments", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "STORAGE_UNAVAILABLE", env.Error.Kind)
}

func TestGetAppointment_NotFound(t *testing.T) {
	appointments := new(mockAppointmentUsecase)
	appointments.On("GetAppointment", mock.Anything, int64(42)).
		Return(nil, apperror.NewNotFound("appointment 42 not found")).Once()
	router := newTestRouter(new(mockSpecializationUsecase), appointments, nil)

	rec, env := serve(t, router, http.MethodGet, "/api/v1/appointments/42", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "appointment 42 not found", env.Message)
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(new(mockSpecializationUsecase), new(mockAppointmentUsecase), func(context.Context) error { return nil })
	rec, _ := serve(t, router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	router = newTestRouter(new(mockSpecializationUsecase), new(mockAppointmentUsecase), func(context.Context) error {
		return errors.New("dial tcp: connection refused")
	})
	rec, env := serve(t, router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "STORAGE_UNAVAILABLE", env.Error.Kind)
}

func TestPreflightIsAnsweredForEveryRoute(t *testing.T) {
	router := newTestRouter(new(mockSpecializationUsecase), new(mockAppointmentUsecase), nil)

	for _, target := range []string{"/api/v1/specializations", "/api/v1/appointments/4/status"} {
		req := httptest.NewRequest(http.MethodOptions, target, nil)
		req.Header.Set("Origin", "https://clinic.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), middleware.HeaderActorRole)
	}
}

func TestUnmatchedRoutesCarryCORSAndRequestID(t *testing.T) {
	router := newTestRouter(new(mockSpecializationUsecase), new(mockAppointmentUsecase), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
}
