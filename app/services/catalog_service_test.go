package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
	"github.com/shashiranjanraj/restopos/pkg/testkit"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCatalogWritesRequireAdmin(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCatalogService(db, rbac.Policy{GuestOrders: true}, time.Minute)
	ctx := context.Background()

	cashier := testkit.CreateUser(t, db, "cashier@example.com", rbac.RoleCashier).Actor()
	user := testkit.CreateUser(t, db, "user@example.com", rbac.RoleUser).Actor()

	for name, actor := range map[string]*rbac.Actor{"cashier": cashier, "user": user} {
		_, err := svc.CreateCategory(ctx, actor, services.CategoryInput{Name: "Drinks"})
		var denied *rbac.DeniedError
		require.True(t, errors.As(err, &denied), "%s: got %v", name, err)
		assert.Equal(t, "Admin access required", denied.Reason)
	}

	_, err := svc.CreateCategory(ctx, nil, services.CategoryInput{Name: "Drinks"})
	assert.ErrorIs(t, err, rbac.ErrAuthenticationRequired)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestCategoryCRUD(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCatalogService(db, rbac.Policy{}, time.Minute)
	ctx := context.Background()
	admin := testkit.CreateUser(t, db, "admin@example.com", rbac.RoleAdmin).Actor()

	c, err := svc.CreateCategory(ctx, admin, services.CategoryInput{Name: " Drinks "})
	require.NoError(t, err)
	assert.Equal(t, "Drinks", c.Name)

	c, err = svc.UpdateCategory(ctx, admin, c.ID, services.CategoryInput{Name: "Beverages"})
	require.NoError(t, err)
	assert.Equal(t, "Beverages", c.Name)

	_, err = svc.UpdateCategory(ctx, admin, c.ID, services.CategoryInput{Name: ""})
	var ve *services.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")

	require.NoError(t, svc.DeleteCategory(ctx, admin, c.ID))
	_, err = svc.GetCategory(ctx, c.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteCategoryWithMenusConflicts(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCatalogService(db, rbac.Policy{}, time.Minute)
	admin := testkit.CreateUser(t, db, "admin@example.com", rbac.RoleAdmin).Actor()
	cat := testkit.CreateCategory(t, db, "Mains")
	testkit.CreateMenu(t, db, cat.ID, "Burger", "15.00")

	err := svc.DeleteCategory(context.Background(), admin, cat.ID)
	var ce *services.ConflictError
	assert.True(t, errors.As(err, &ce), "got %v", err)
}

func TestMenuCRUD(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCatalogService(db, rbac.Policy{}, time.Minute)
	ctx := context.Background()
	admin := testkit.CreateUser(t, db, "admin@example.com", rbac.RoleAdmin).Actor()
	cat := testkit.CreateCategory(t, db, "Mains")

	m, err := svc.CreateMenu(ctx, admin, services.MenuInput{Name: "Burger", Price: price("12.5"), CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "12.50", m.Price.StringFixed(2))
	require.NotNil(t, m.Category)
	assert.Equal(t, "Mains", m.Category.Name)

	desc := "double patty"
	m, err = svc.UpdateMenu(ctx, admin, m.ID, services.MenuInput{Name: "Big Burger", Description: &desc, Price: price("14"), CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "Big Burger", m.Name)
	require.NotNil(t, m.Description)
	assert.Equal(t, "double patty", *m.Description)

	menus, err := svc.ListMenus(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "14.00", menus[0].Price.StringFixed(2))

	require.NoError(t, svc.DeleteMenu(ctx, admin, m.ID))
	_, err = svc.GetMenu(ctx, m.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestMenuValidation(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCatalogService(db, rbac.Policy{}, time.Minute)
	ctx := context.Background()
	admin := testkit.CreateUser(t, db, "admin@example.com", rbac.RoleAdmin).Actor()
	cat := testkit.CreateCategory(t, db, "Mains")

	cases := map[string]struct {
		in    services.MenuInput
		field string
	}{
		"missing price":    {services.MenuInput{Name: "X", CategoryID: cat.ID}, "price"},
		"negative price":   {services.MenuInput{Name: "X", Price: price("-1"), CategoryID: cat.ID}, "price"},
		"price too large":  {services.MenuInput{Name: "X", Price: price("100000000"), CategoryID: cat.ID}, "price"},
		"missing name":     {services.MenuInput{Price: price("1"), CategoryID: cat.ID}, "name"},
		"missing category": {services.MenuInput{Name: "X", Price: price("1")}, "category_id"},
		"unknown category": {services.MenuInput{Name: "X", Price: price("1"), CategoryID: 999}, "category_id"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateMenu(ctx, admin, tc.in)
			var ve *services.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}
