package controllers

import (
	"github.com/shashiranjanraj/restopos/app/resources"
	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/auth"
	"github.com/shashiranjanraj/restopos/pkg/ctx"
	"github.com/shashiranjanraj/restopos/pkg/resource"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /api/register.
func (ac *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}
	user, tok, err := ac.service.Register(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resources.AuthPayload(*user, tok))
}

// Login handles POST /api/login.
func (ac *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}
	user, tok, err := ac.service.Login(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.AuthPayload(*user, tok))
}

// Me handles GET /api/user.
func (ac *AuthController) Me(c *ctx.Context) {
	user, err := ac.service.Me(c.Context(), c.Actor())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(*user, resources.UserWithRoles))
}

// ChangePassword handles PUT /api/change-password.
func (ac *AuthController) ChangePassword(c *ctx.Context) {
	var in services.ChangePasswordInput
	if !c.BindJSON(&in) {
		return
	}
	if err := ac.service.ChangePassword(c.Context(), c.Actor(), in); err != nil {
		fail(c, err)
		return
	}
	c.Message("Password changed successfully")
}

// Logout handles POST /api/logout. The presented token is refused afterwards.
func (ac *AuthController) Logout(c *ctx.Context) {
	if err := ac.service.Logout(c.Context(), c.Actor(), auth.ClaimsFrom(c.Context())); err != nil {
		fail(c, err)
		return
	}
	c.Message("Successfully logged out")
}
