package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
)

// RequirePermission checks if the actor's role has a specific permission.
// It runs after ResolveActor.
func RequirePermission(permission actor.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := ActorFromContext(r.Context())
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !actor.HasPermission(a.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, a.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
