// Package rbac holds the role catalog, the actor model and the authorization
// policy for restopos.
//
// Roles are a closed set. An actor carries a RoleSet, and every decision is
// the OR of what each held role permits:
//
//	actor := &rbac.Actor{ID: 7, Roles: rbac.NewRoleSet(rbac.RoleCashier)}
//	if err := policy.Decide(actor, rbac.ActionOrderMarkPaid, rbac.Resource{}).Err(); err != nil {
//	    return err
//	}
package rbac

import (
	"context"
	"strings"
)

// Role is one of the fixed permission groups.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
	RoleUser    Role = "user"
)

// All lists every role in seeding order.
var All = []Role{RoleAdmin, RoleCashier, RoleUser}

// ParseRole maps a stored role name onto the enumeration.
func ParseRole(name string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(name))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleCashier:
		return RoleCashier, true
	case RoleUser:
		return RoleUser, true
	}
	return "", false
}

func (r Role) bit() RoleSet {
	switch r {
	case RoleAdmin:
		return 1 << 0
	case RoleCashier:
		return 1 << 1
	case RoleUser:
		return 1 << 2
	}
	return 0
}

// RoleSet is an order-irrelevant set of roles.
type RoleSet uint8

// NewRoleSet builds a set from roles; unknown values are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= r.bit()
	}
	return s
}

// ParseRoleSet builds a set from stored role names, skipping unknown names.
func ParseRoleSet(names ...string) RoleSet {
	var s RoleSet
	for _, n := range names {
		if r, ok := ParseRole(n); ok {
			s |= r.bit()
		}
	}
	return s
}

func (s RoleSet) Has(r Role) bool { return r.bit() != 0 && s&r.bit() != 0 }

func (s RoleSet) With(r Role) RoleSet { return s | r.bit() }

func (s RoleSet) IsEmpty() bool { return s == 0 }

// Roles returns the members in catalog order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(All))
	for _, r := range All {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Strings returns the member names in catalog order.
func (s RoleSet) Strings() []string {
	roles := s.Roles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// Actor is an authenticated identity. A nil *Actor is a guest.
type Actor struct {
	ID    uint
	Roles RoleSet
}

// Is reports whether the actor holds role. Safe on a nil actor.
func (a *Actor) Is(role Role) bool {
	return a != nil && a.Roles.Has(role)
}

type ctxKey struct{}

// WithActor stores the authenticated actor in ctx.
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// ActorFrom returns the actor stored by WithActor, or nil for a guest.
func ActorFrom(ctx context.Context) *Actor {
	a, _ := ctx.Value(ctxKey{}).(*Actor)
	return a
}
