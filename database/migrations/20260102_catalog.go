package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/migration"
)

func init() {
	migration.Register("20260102000000_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260102000001_create_menus_table", &CreateMenusTable{})
}

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

type CreateMenusTable struct{}

func (m *CreateMenusTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Menu{})
}

func (m *CreateMenusTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("menus")
}
