package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type ctxKey string

const actorKey ctxKey = "actor"

// ResolveActor turns the token claims into an actor.Actor for the handlers.
// The employee_id claim identifies the caller; user_id is the fallback for
// tokens issued before employees had their own id.
func ResolveActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		a, err := ActorFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), a)))
	})
}

// ActorFromClaims builds a validated actor from JWT claims.
func ActorFromClaims(claims map[string]interface{}) (actor.Actor, error) {
	roleStr, _ := claims["role"].(string)
	role, err := actor.ParseRole(roleStr)
	if err != nil {
		return actor.Actor{}, err
	}

	id, _ := claims["employee_id"].(string)
	if id == "" {
		id, _ = claims["user_id"].(string)
	}
	companyID, _ := claims["company_id"].(string)

	a := actor.Actor{ID: id, CompanyID: companyID, Role: role}
	if err := a.Validate(); err != nil {
		return actor.Actor{}, err
	}
	return a, nil
}

func withActor(ctx context.Context, a actor.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// ActorFromContext returns the actor stored by ResolveActor.
func ActorFromContext(ctx context.Context) (actor.Actor, bool) {
	a, ok := ctx.Value(actorKey).(actor.Actor)
	return a, ok
}
