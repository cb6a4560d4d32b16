package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Menu is an orderable item. Its Price is the current list price; orders
// copy it into OrderItem.Price when they are placed.
type Menu struct {
	gorm.Model
	Name        string          `gorm:"size:255;not null"             json:"name"`
	Description *string         `gorm:"type:text"                     json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"   json:"price"`
	CategoryID  uint            `gorm:"not null;index"                json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:RESTRICT;" json:"category,omitempty"`
}
