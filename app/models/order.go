package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusCompleted OrderStatus = "completed"
)

// transitions maps a target status to the statuses it may be entered from.
// paid → paid is accepted so that re-marking a paid order is idempotent.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPaid:      {StatusPending, StatusPaid},
	StatusCompleted: {StatusPaid},
}

// AllowedFrom returns the statuses from which to may be entered.
func AllowedFrom(to OrderStatus) []OrderStatus {
	return append([]OrderStatus(nil), transitions[to]...)
}

// CanTransitionTo reports whether s → to is a legal move.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, from := range transitions[to] {
		if from == s {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCompleted:
		return true
	}
	return false
}

// Order is a customer order. UserID is nil for guest orders.
type Order struct {
	ID          uint            `gorm:"primaryKey"                               json:"id"`
	UserID      *uint           `gorm:"index"                                    json:"user_id"`
	User        *User           `gorm:"constraint:OnDelete:SET NULL;"            json:"user,omitempty"`
	TableNumber string          `gorm:"size:255;not null"                        json:"table_number"`
	Status      OrderStatus     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"              json:"total_price"`
	Items       []OrderItem     `gorm:"constraint:OnDelete:CASCADE;"             json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemsTotal is Σ price × quantity over the loaded items.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// OrderItem is one line of an order. Price is the menu price captured when
// the order was placed and is never refreshed.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                  json:"id"`
	OrderID   uint            `gorm:"not null;index"              json:"order_id"`
	MenuID    uint            `gorm:"not null;index"              json:"menu_id"`
	Menu      *Menu           `json:"menu,omitempty"`
	Quantity  int             `gorm:"not null"                    json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Subtotal is price × quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
