package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/pkg/response"
)

type contextKey string

const (
	ActorKey     contextKey = "actor"
	RequestIDKey contextKey = "request_id"
)

// Headers set by the upstream gateway once it has authenticated the caller.
const (
	HeaderActorRole = "X-Actor-Role"
	HeaderUserID    = "X-User-ID"
)

type ActorMiddleware struct{}

func NewActorMiddleware() *ActorMiddleware {
	return &ActorMiddleware{}
}

// Identify puts the calling actor into the request context. Requests without
// an X-Actor-Role header pass through anonymously.
func (m *ActorMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderActorRole)))
		if role == "" {
			next.ServeHTTP(w, r)
			return
		}

		var actor entity.Actor
		switch entity.ActorRole(role) {
		case entity.ActorRoleStaff:
			actor = entity.StaffActor()
		case entity.ActorRoleUser:
			userID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
			if err != nil || userID <= 0 {
				response.BadRequest(w, "X-User-ID must be a positive integer for role user")
				return
			}
			actor = entity.UserActor(userID)
		default:
			response.BadRequest(w, "X-Actor-Role must be user or staff")
			return
		}

		ctx := context.WithValue(r.Context(), ActorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActorFromContext extracts the actor from context
func GetActorFromContext(ctx context.Context) (entity.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(entity.Actor)
	return actor, ok
}

// GetRequestIDFromContext extracts the request ID from context
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	return requestID, ok
}
