package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shashiranjanraj/restopos/pkg/cache"
)

const revokedKeyPrefix = "auth:revoked:"

// revoked is the fallback denylist used while Redis is not connected. It
// only covers tokens revoked by this process.
var revoked = struct {
	mu    sync.Mutex
	until map[string]time.Time
}{until: map[string]time.Time{}}

// Revoke denylists the token described by claims until it expires.
func Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return errors.New("auth: token is not revocable")
	}
	expires := claims.ExpiresAt.Time
	ttl := time.Until(expires)
	if ttl <= 0 {
		return nil
	}

	if cache.RDB != nil {
		return cache.Set(ctx, revokedKeyPrefix+claims.ID, true, ttl)
	}

	now := time.Now()
	revoked.mu.Lock()
	defer revoked.mu.Unlock()
	for id, until := range revoked.until {
		if !until.After(now) {
			delete(revoked.until, id)
		}
	}
	revoked.until[claims.ID] = expires
	return nil
}

// IsRevoked reports whether the token has been revoked.
func IsRevoked(ctx context.Context, claims *Claims) (bool, error) {
	if claims == nil || claims.ID == "" {
		return false, nil
	}
	if cache.RDB != nil {
		return cache.Exists(ctx, revokedKeyPrefix+claims.ID)
	}

	revoked.mu.Lock()
	defer revoked.mu.Unlock()
	until, ok := revoked.until[claims.ID]
	return ok && until.After(time.Now()), nil
}

type claimsKey struct{}

// WithClaims stores the validated claims of the request's bearer token.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the claims stored by WithClaims, or nil.
func ClaimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey{}).(*Claims)
	return claims
}
