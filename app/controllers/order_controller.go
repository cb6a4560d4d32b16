package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/app/resources"
	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/ctx"
	"github.com/shashiranjanraj/restopos/pkg/resource"
)

// OrderController serves /api/orders.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Index handles GET /api/orders.
func (oc *OrderController) Index(c *ctx.Context) {
	orders, p, err := oc.orders.List(c.Context(), c.Actor(), c.Page())
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(resource.Collection(orders, resources.Order), p)
}

// Store handles POST /api/orders. The bearer token is optional here.
func (oc *OrderController) Store(c *ctx.Context) {
	var in services.CreateOrderInput
	if !c.BindJSON(&in) {
		return
	}
	order, err := oc.orders.Create(c.Context(), c.Actor(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(*order, resources.Order))
}

// Show handles GET /api/orders/{id}.
func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	order, err := oc.orders.Get(c.Context(), c.Actor(), id)
	oc.respond(c, order, err)
}

// Update handles PUT /api/orders/{id}.
func (oc *OrderController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	raw, err := c.BindRaw()
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	order, err := oc.orders.Update(c.Context(), c.Actor(), id, decodeOrderPatch(raw))
	oc.respond(c, order, err)
}

// MarkPaid handles PATCH /api/orders/{id}/mark-paid.
func (oc *OrderController) MarkPaid(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	order, err := oc.orders.MarkAsPaid(c.Context(), c.Actor(), id)
	oc.respond(c, order, err)
}

// MarkCompleted handles PATCH /api/orders/{id}/mark-completed.
func (oc *OrderController) MarkCompleted(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	order, err := oc.orders.MarkAsCompleted(c.Context(), c.Actor(), id)
	oc.respond(c, order, err)
}

func (oc *OrderController) respond(c *ctx.Context, order *models.Order, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(*order, resources.Order))
}

// decodeOrderPatch reads the keys of an update body. Presence matters:
// "user_id": null clears the owner while a missing key leaves it alone.
// Type errors land in patch.Invalid so the service can authorize first.
func decodeOrderPatch(raw map[string]json.RawMessage) services.OrderPatch {
	var patch services.OrderPatch
	errs := map[string]string{}

	if _, ok := raw["status"]; ok {
		patch.Status = true
	}
	if v, ok := raw["table_number"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			errs["table_number"] = "The table_number must be a string."
		} else {
			patch.TableNumber = &s
		}
	}
	if v, ok := raw["user_id"]; ok {
		if string(v) == "null" {
			patch.ClearUser = true
		} else {
			var id uint
			if err := json.Unmarshal(v, &id); err != nil || id == 0 {
				errs["user_id"] = "The user_id must be a positive integer."
			} else {
				patch.UserID = &id
			}
		}
	}
	if len(errs) > 0 {
		patch.Invalid = errs
	}
	return patch
}
