package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/restopos/pkg/auth"
	"github.com/shashiranjanraj/restopos/pkg/logger"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
	"github.com/shashiranjanraj/restopos/pkg/response"
)

// ActorResolver loads the actor (with current roles) for a token's user id.
// It returns (nil, nil) when the user no longer exists.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uint) (*rbac.Actor, error)
}

// Authenticate attaches the bearer token's actor to the request context.
// Requests without an Authorization header continue as guests; a present but
// invalid or revoked token is rejected with 401. The token's claims are kept
// in the context for logout.
func Authenticate(resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				response.Unauthorized(w, "Invalid token")
				return
			}

			claims, err := auth.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			revoked, err := auth.IsRevoked(r.Context(), claims)
			if err != nil {
				logger.WithCtx(r.Context()).Error("auth: check revocation", "user_id", claims.UserID, "error", err)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if revoked {
				response.Unauthorized(w, "Token has been revoked")
				return
			}

			actor, err := resolver.ResolveActor(r.Context(), claims.UserID)
			if err != nil {
				logger.WithCtx(r.Context()).Error("auth: resolve actor", "user_id", claims.UserID, "error", err)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if actor == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			ctx := auth.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(rbac.WithActor(ctx, actor)))
		})
	}
}

// RequireActor rejects guests with 401.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rbac.ActorFrom(r.Context()) == nil {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
