// Package routes wires controllers onto the router.
package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/controllers"
	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/config"
	"github.com/shashiranjanraj/restopos/pkg/ctx"
	"github.com/shashiranjanraj/restopos/pkg/middleware"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
	"github.com/shashiranjanraj/restopos/pkg/router"
)

// Services bundles everything the API routes need.
type Services struct {
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Orders   *services.OrderService
	Cashiers *services.CashierService
}

// NewServices builds the service layer on db using the current config.
func NewServices(db *gorm.DB) Services {
	policy := rbac.Policy{GuestOrders: config.GuestOrders()}
	return Services{
		Auth:     services.NewAuthService(db),
		Catalog:  services.NewCatalogService(db, policy, config.MenuCacheTTL()),
		Orders:   services.NewOrderService(db, policy),
		Cashiers: services.NewCashierService(db, policy),
	}
}

// RegisterAPI mounts every /api route. Authentication is optional at the
// group level; handlers that need an actor get RequireActor, and the
// services still decide per-resource access.
func RegisterAPI(r *router.Router, svc Services) {
	auth := controllers.NewAuthController(svc.Auth)
	categories := controllers.NewCategoryController(svc.Catalog)
	menus := controllers.NewMenuController(svc.Catalog)
	orders := controllers.NewOrderController(svc.Orders)
	cashiers := controllers.NewCashierController(svc.Cashiers)

	api := r.Group("/api", middleware.Authenticate(svc.Auth))

	api.Post("/register", "auth.register", ctx.Wrap(auth.Register), rbac.Guest)
	api.Post("/login", "auth.login", ctx.Wrap(auth.Login), rbac.Guest)

	api.Get("/categories", "categories.index", ctx.Wrap(categories.Index))
	api.Get("/categories/{id}", "categories.show", ctx.Wrap(categories.Show))
	api.Get("/menus", "menus.index", ctx.Wrap(menus.Index))
	api.Get("/menus/{id}", "menus.show", ctx.Wrap(menus.Show))
	api.Post("/orders", "orders.store", ctx.Wrap(orders.Store))

	protected := api.Group("", middleware.RequireActor)
	protected.Post("/logout", "auth.logout", ctx.Wrap(auth.Logout))
	protected.Get("/user", "auth.user", ctx.Wrap(auth.Me))
	protected.Put("/change-password", "auth.change_password", ctx.Wrap(auth.ChangePassword))

	protected.Post("/categories", "categories.store", ctx.Wrap(categories.Store))
	protected.Put("/categories/{id}", "categories.update", ctx.Wrap(categories.Update))
	protected.Delete("/categories/{id}", "categories.destroy", ctx.Wrap(categories.Destroy))

	protected.Post("/menus", "menus.store", ctx.Wrap(menus.Store))
	protected.Put("/menus/{id}", "menus.update", ctx.Wrap(menus.Update))
	protected.Delete("/menus/{id}", "menus.destroy", ctx.Wrap(menus.Destroy))

	protected.Get("/orders", "orders.index", ctx.Wrap(orders.Index))
	protected.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show))
	protected.Put("/orders/{id}", "orders.update", ctx.Wrap(orders.Update))

	cashierOnly := protected.Group("/orders/{id}", rbac.Require(rbac.RoleCashier))
	cashierOnly.Patch("/mark-paid", "orders.mark_paid", ctx.Wrap(orders.MarkPaid))
	cashierOnly.Patch("/mark-completed", "orders.mark_completed", ctx.Wrap(orders.MarkCompleted))

	admin := protected.Group("/cashiers", rbac.Require(rbac.RoleAdmin))
	admin.Get("", "cashiers.index", ctx.Wrap(cashiers.Index))
	admin.Post("", "cashiers.store", ctx.Wrap(cashiers.Store))
	admin.Get("/{id}", "cashiers.show", ctx.Wrap(cashiers.Show))
	admin.Put("/{id}", "cashiers.update", ctx.Wrap(cashiers.Update))
	admin.Delete("/{id}", "cashiers.destroy", ctx.Wrap(cashiers.Destroy))
}
