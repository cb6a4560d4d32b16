// Package events names the domain events fired by the service layer.
package events

import (
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/event"
)

const (
	OrderPlaced        event.Name = "order.placed"
	OrderStatusChanged event.Name = "order.status_changed"
	OrderUpdated       event.Name = "order.updated"
)

// OrderPlacedPayload accompanies OrderPlaced. ActorID is nil for guests.
type OrderPlacedPayload struct {
	OrderID uint
	OwnerID *uint
	ActorID *uint
	Total   decimal.Decimal
	Items   int
}

// OrderStatusChangedPayload accompanies OrderStatusChanged.
type OrderStatusChangedPayload struct {
	OrderID uint
	Status  models.OrderStatus
	ActorID uint
}

// OrderUpdatedPayload lists the columns an admin changed.
type OrderUpdatedPayload struct {
	OrderID uint
	Fields  []string
	ActorID uint
}
