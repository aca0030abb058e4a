package middleware

import (
	"net/http"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/pkg/response"
)

// RequireRole creates a middleware that checks the actor has one of the roles.
// The actor is read from context (set by ActorMiddleware).
func RequireRole(allowedRoles ...entity.ActorRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActorFromContext(r.Context())
			if !ok {
				response.Forbidden(w, "Actor headers are required")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if actor.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff is a convenience middleware for staff-only endpoints
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.ActorRoleStaff)(next)
}
