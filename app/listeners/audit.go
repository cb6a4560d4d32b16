// Package listeners subscribes to domain events.
package listeners

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/restopos/app/events"
	"github.com/shashiranjanraj/restopos/pkg/event"
	"github.com/shashiranjanraj/restopos/pkg/logger"
)

var once sync.Once

// Register attaches the audit listeners. Safe to call more than once.
func Register() {
	once.Do(func() {
		event.Listen(events.OrderPlaced, auditOrderPlaced)
		event.Listen(events.OrderStatusChanged, auditStatusChanged)
		event.Listen(events.OrderUpdated, auditOrderUpdated)
	})
}

func auditOrderPlaced(ctx context.Context, payload interface{}) {
	p, ok := payload.(events.OrderPlacedPayload)
	if !ok {
		return
	}
	logger.WithCtx(ctx).Info("audit: order placed",
		"order_id", p.OrderID,
		"owner_id", optional(p.OwnerID),
		"actor_id", optional(p.ActorID),
		"total", p.Total.StringFixed(2),
		"items", p.Items,
	)
}

func auditStatusChanged(ctx context.Context, payload interface{}) {
	p, ok := payload.(events.OrderStatusChangedPayload)
	if !ok {
		return
	}
	logger.WithCtx(ctx).Info("audit: order status changed",
		"order_id", p.OrderID,
		"status", string(p.Status),
		"actor_id", p.ActorID,
	)
}

func auditOrderUpdated(ctx context.Context, payload interface{}) {
	p, ok := payload.(events.OrderUpdatedPayload)
	if !ok {
		return
	}
	logger.WithCtx(ctx).Info("audit: order updated",
		"order_id", p.OrderID,
		"fields", p.Fields,
		"actor_id", p.ActorID,
	)
}

// optional unwraps an id pointer so the log shows the value, or "guest".
func optional(id *uint) interface{} {
	if id == nil {
		return "guest"
	}
	return *id
}
