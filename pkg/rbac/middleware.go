package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/restopos/pkg/response"
)

// Require returns middleware that admits only actors holding at least one
// of roles. Requires middleware.Authenticate to have run first.
func Require(roles ...Role) func(http.Handler) http.Handler {
	allowed := NewRoleSet(roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFrom(r.Context())
			if actor == nil {
				response.Unauthorized(w)
				return
			}
			if actor.Roles&allowed == 0 {
				response.Forbidden(w, "Unauthorized - Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest blocks authenticated actors (login/register).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFrom(r.Context()) != nil {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
