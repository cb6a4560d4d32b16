package controllers

import (
	"github.com/shashiranjanraj/restopos/app/resources"
	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/ctx"
	"github.com/shashiranjanraj/restopos/pkg/resource"
)

// CashierController serves /api/cashiers (admin only).
type CashierController struct {
	cashiers *services.CashierService
}

func NewCashierController(cashiers *services.CashierService) *CashierController {
	return &CashierController{cashiers: cashiers}
}

func (cc *CashierController) Index(c *ctx.Context) {
	users, p, err := cc.cashiers.List(c.Context(), c.Actor(), c.Page())
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(resource.Collection(users, resources.User), p)
}

func (cc *CashierController) Store(c *ctx.Context) {
	var in services.CreateCashierInput
	if !c.BindJSON(&in) {
		return
	}
	user, err := cc.cashiers.Create(c.Context(), c.Actor(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(*user, resources.User))
}

func (cc *CashierController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	user, err := cc.cashiers.Get(c.Context(), c.Actor(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(*user, resources.User))
}

func (cc *CashierController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.UpdateCashierInput
	if !c.BindJSON(&in) {
		return
	}
	user, err := cc.cashiers.Update(c.Context(), c.Actor(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(*user, resources.User))
}

func (cc *CashierController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := cc.cashiers.Delete(c.Context(), c.Actor(), id); err != nil {
		fail(c, err)
		return
	}
	c.Message("Cashier deleted")
}
