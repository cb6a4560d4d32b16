package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/ctx"
	"github.com/shashiranjanraj/restopos/pkg/logger"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

// fail maps a service error onto the response envelope. Anything without a
// domain meaning is logged and answered with a generic 500.
func fail(c *ctx.Context, err error) {
	var (
		ve     *services.ValidationError
		nf     *services.NotFoundError
		te     *services.TransitionError
		ce     *services.ConflictError
		denied *rbac.DeniedError
	)

	switch {
	case errors.As(err, &ve):
		c.ValidationError(ve.Fields)
	case errors.Is(err, rbac.ErrAuthenticationRequired):
		c.Error(http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Error(http.StatusUnauthorized, "Invalid credentials")
	case errors.As(err, &denied):
		c.Error(http.StatusForbidden, denied.Reason)
	case errors.As(err, &nf):
		c.NotFound(nf.Error())
	case errors.As(err, &te):
		c.Error(http.StatusBadRequest, te.Message)
	case errors.As(err, &ce):
		c.Error(http.StatusConflict, ce.Message)
	default:
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Something went wrong, please try again")
	}
}
