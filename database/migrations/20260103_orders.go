package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/migration"
)

func init() {
	migration.Register("20260103000000_create_orders_tables", &CreateOrdersTables{})
}

// CreateOrdersTables creates orders and order_items together; items
// cascade with their order.
type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}
