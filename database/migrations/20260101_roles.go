package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/migration"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

func init() {
	migration.Register("20260101000000_create_roles_table", &CreateRolesTable{})
	migration.Register("20260101000001_create_users_table", &CreateUsersTable{})
}

// roleCatalog is the fixed set of roles every installation starts with.
var roleCatalog = []models.Role{
	{Name: string(rbac.RoleAdmin), DisplayName: "Administrator", Description: "Full access to all system features"},
	{Name: string(rbac.RoleCashier), DisplayName: "Cashier", Description: "Can manage orders and payments"},
	{Name: string(rbac.RoleUser), DisplayName: "User", Description: "Standard user with basic access"},
}

// -------- 0000: roles --------

type CreateRolesTable struct{}

func (m *CreateRolesTable) Up(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Role{}); err != nil {
		return err
	}
	rows := make([]models.Role, len(roleCatalog))
	copy(rows, roleCatalog)
	return db.Create(&rows).Error
}

func (m *CreateRolesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("roles")
}

// -------- 0001: users + role_user --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("role_user", "users")
}
