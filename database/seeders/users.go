package seeders

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/auth"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

func init() {
	Register("default_accounts", SeedDefaultAccounts)
	Register("role_backfill", BackfillRoles)
}

// DefaultPassword is the password of the seeded accounts.
const DefaultPassword = "password"

var defaultAccounts = []struct {
	name, email string
	role        rbac.Role
}{
	{"Admin User", "admin@example.com", rbac.RoleAdmin},
	{"Cashier User", "cashier@example.com", rbac.RoleCashier},
}

func findRole(db *gorm.DB, role rbac.Role) (models.Role, error) {
	var r models.Role
	if err := db.Where("name = ?", string(role)).First(&r).Error; err != nil {
		return r, fmt.Errorf("role %q: %w (run migrations first)", role, err)
	}
	return r, nil
}

// SeedDefaultAccounts creates the admin and cashier accounts if missing.
func SeedDefaultAccounts(db *gorm.DB) error {
	for _, acc := range defaultAccounts {
		var existing models.User
		err := db.Where("email = ?", acc.email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		role, err := findRole(db, acc.role)
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(DefaultPassword)
		if err != nil {
			return err
		}
		user := models.User{Name: acc.name, Email: acc.email, Password: hash, Roles: []models.Role{role}}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create %s: %w", acc.email, err)
		}
	}
	return nil
}

// BackfillRoles gives every role-less account the user role, except
// admin@example.com which becomes an admin.
func BackfillRoles(db *gorm.DB) error {
	var users []models.User
	err := db.Where("id NOT IN (?)", db.Table("role_user").Select("user_id")).Find(&users).Error
	if err != nil {
		return err
	}

	for _, u := range users {
		kind := rbac.RoleUser
		if u.Email == "admin@example.com" {
			kind = rbac.RoleAdmin
		}
		role, err := findRole(db, kind)
		if err != nil {
			return err
		}
		if err := db.Model(&u).Association("Roles").Append(&role); err != nil {
			return fmt.Errorf("assign %s to %s: %w", kind, u.Email, err)
		}
	}
	return nil
}
