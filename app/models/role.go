package models

import (
	"time"

	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

// Role is a row of the role catalog. Rows are created by migration only.
type Role struct {
	ID          uint      `gorm:"primaryKey"                   json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	DisplayName string    `gorm:"size:100;not null"            json:"display_name"`
	Description string    `gorm:"size:255"                     json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Kind maps the stored name onto the role enumeration.
func (r Role) Kind() (rbac.Role, bool) { return rbac.ParseRole(r.Name) }
