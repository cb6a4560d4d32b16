// Package kernel assembles the HTTP handler: global middleware, the
// operational endpoints and the API routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/listeners"
	"github.com/shashiranjanraj/restopos/app/routes"
	"github.com/shashiranjanraj/restopos/config"
	"github.com/shashiranjanraj/restopos/pkg/ctx"
	"github.com/shashiranjanraj/restopos/pkg/metrics"
	"github.com/shashiranjanraj/restopos/pkg/middleware"
	"github.com/shashiranjanraj/restopos/pkg/reqid"
	"github.com/shashiranjanraj/restopos/pkg/router"
)

// NewRouter builds the router with every route mounted. Separate from
// Handler so route:list can inspect it.
func NewRouter(db *gorm.DB) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, so latency covers everything below
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.NewLimiter(config.RateLimit(), time.Minute).Middleware)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", ctx.Wrap(health(db)))

	r.NotFound(ctx.Wrap(func(c *ctx.Context) { c.NotFound("Route not found") }))
	r.MethodNotAllowed(ctx.Wrap(func(c *ctx.Context) {
		c.Error(http.StatusMethodNotAllowed, "Method not allowed")
	}))

	listeners.Register()
	routes.RegisterAPI(r, routes.NewServices(db))
	return r
}

// Handler returns the fully wired http.Handler.
func Handler(db *gorm.DB) http.Handler {
	return NewRouter(db).Handler()
}

func health(db *gorm.DB) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			err = sqlDB.PingContext(pingCtx)
			cancel()
		}
		if err != nil {
			c.Error(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.Message("ok")
	}
}
