// Package testkit holds helpers shared by restopos tests: throwaway sqlite
// databases with all migrations applied, fixture builders, and a
// data-driven runner for HTTP scenarios.
package testkit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	_ "github.com/shashiranjanraj/restopos/database/migrations"
	"github.com/shashiranjanraj/restopos/pkg/auth"
	"github.com/shashiranjanraj/restopos/pkg/database"
	"github.com/shashiranjanraj/restopos/pkg/migration"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

// Password is the plain-text password of every user created by CreateUser.
const Password = "password"

// NewDB opens a private in-memory sqlite database and runs every migration.
// The database is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err, "testkit: open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migration.New(db).Run()
	require.NoError(t, err, "testkit: migrate")
	return db
}

// CreateUser inserts a user holding roles, with password Password.
func CreateUser(t *testing.T, db *gorm.DB, email string, roles ...rbac.Role) models.User {
	t.Helper()

	hash, err := auth.HashPassword(Password)
	require.NoError(t, err)

	user := models.User{Name: email, Email: email, Password: hash}
	for _, r := range roles {
		var role models.Role
		require.NoError(t, db.Where("name = ?", string(r)).First(&role).Error)
		user.Roles = append(user.Roles, role)
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateCategory inserts a category.
func CreateCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// CreateMenu inserts a menu priced at price (a decimal string such as "15.00").
func CreateMenu(t *testing.T, db *gorm.DB, categoryID uint, name, price string) models.Menu {
	t.Helper()
	m := models.Menu{Name: name, Price: decimal.RequireFromString(price), CategoryID: categoryID}
	require.NoError(t, db.Omit("Category").Create(&m).Error)
	return m
}

// Token issues a bearer token for user.
func Token(t *testing.T, user models.User) string {
	t.Helper()
	tok, _, err := auth.GenerateToken(user.ID)
	require.NoError(t, err)
	return tok
}
