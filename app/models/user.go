package models

import (
	"time"

	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

// User is an account. Roles are attached through the role_user pivot.
type User struct {
	ID        uint      `gorm:"primaryKey"                    json:"id"`
	Name      string    `gorm:"size:255;not null"             json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	Roles     []Role    `gorm:"many2many:role_user;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleSet collapses the loaded Roles association into a set.
// Unknown role names are ignored.
func (u User) RoleSet() rbac.RoleSet {
	var s rbac.RoleSet
	for _, r := range u.Roles {
		if kind, ok := r.Kind(); ok {
			s = s.With(kind)
		}
	}
	return s
}

// Actor is the authorization identity of u. Roles must be preloaded.
func (u User) Actor() *rbac.Actor {
	return &rbac.Actor{ID: u.ID, Roles: u.RoleSet()}
}

// HasRole reports whether u holds role. Roles must be preloaded.
func (u User) HasRole(role rbac.Role) bool { return u.RoleSet().Has(role) }
