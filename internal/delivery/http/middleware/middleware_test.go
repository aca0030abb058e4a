package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-clinic-booking/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware_RequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.AddHook(RequestIDHook{})

	var seen string
	h := NewLoggingMiddleware(log).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates an id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, seen, line["request_id"])
		assert.Equal(t, float64(http.StatusTeapot), line["status"])
		assert.Equal(t, "warning", line["level"])
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		const id = "7b0e4a52-2a9b-4c1e-9d0f-1f2e3d4c5b6a"
		req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
		req.Header.Set(HeaderRequestID, id)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, id, seen)
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
		req.Header.Set(HeaderRequestID, "not a uuid\n")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.NotEqual(t, "not a uuid\n", seen)
		assert.Len(t, seen, 36)
	})
}

func TestActorMiddleware_Identify(t *testing.T) {
	var actor entity.Actor
	var found bool
	h := NewActorMiddleware().Identify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, found = GetActorFromContext(r.Context())
	}))

	tests := []struct {
		name      string
		role      string
		userID    string
		wantCode  int
		wantFound bool
		want      entity.Actor
	}{
		{"anonymous", "", "", http.StatusOK, false, entity.Actor{}},
		{"staff", "Staff", "", http.StatusOK, true, entity.StaffActor()},
		{"user", "user", "12", http.StatusOK, true, entity.UserActor(12)},
		{"user without id", "user", "", http.StatusBadRequest, false, entity.Actor{}},
		{"negative id", "user", "-4", http.StatusBadRequest, false, entity.Actor{}},
		{"unknown role", "root", "", http.StatusBadRequest, false, entity.Actor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, found = entity.Actor{}, false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != "" {
				req.Header.Set(HeaderActorRole, tt.role)
			}
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, actor)
		})
	}
}
