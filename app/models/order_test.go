package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusPaid, true},
		{models.StatusPaid, models.StatusPaid, true},
		{models.StatusCompleted, models.StatusPaid, false},
		{models.StatusPaid, models.StatusCompleted, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusCompleted, models.StatusCompleted, false},
		{models.StatusPaid, models.StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s → %s", tc.from, tc.to)
	}
}

func TestAllowedFromIsACopy(t *testing.T) {
	from := models.AllowedFrom(models.StatusCompleted)
	from[0] = models.StatusPending

	assert.Equal(t, []models.OrderStatus{models.StatusPaid}, models.AllowedFrom(models.StatusCompleted))
	assert.Empty(t, models.AllowedFrom(models.StatusPending))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, models.StatusPaid.Valid())
	assert.False(t, models.OrderStatus("cancelled").Valid())
}

func TestItemsTotal(t *testing.T) {
	o := models.Order{Items: []models.OrderItem{
		{Quantity: 2, Price: decimal.RequireFromString("15.00")},
		{Quantity: 3, Price: decimal.RequireFromString("0.10")},
	}}

	assert.Equal(t, "30.30", o.ItemsTotal().StringFixed(2))
}

func TestUserRoleSet(t *testing.T) {
	u := models.User{ID: 4, Roles: []models.Role{{Name: "cashier"}, {Name: "legacy"}}}

	assert.True(t, u.HasRole(rbac.RoleCashier))
	assert.False(t, u.HasRole(rbac.RoleAdmin))
	assert.Equal(t, &rbac.Actor{ID: 4, Roles: rbac.NewRoleSet(rbac.RoleCashier)}, u.Actor())
}
