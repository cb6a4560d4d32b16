package rbac_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

func actor(id uint, roles ...rbac.Role) *rbac.Actor {
	return &rbac.Actor{ID: id, Roles: rbac.NewRoleSet(roles...)}
}

func ptr(id uint) *uint { return &id }

func TestPolicyTable(t *testing.T) {
	p := rbac.Policy{GuestOrders: true}

	admin := actor(1, rbac.RoleAdmin)
	cashier := actor(2, rbac.RoleCashier)
	user := actor(3, rbac.RoleUser)
	noRole := actor(4)

	cases := []struct {
		name   string
		actor  *rbac.Actor
		action rbac.Action
		res    rbac.Resource
		allow  bool
	}{
		{"admin writes catalog", admin, rbac.ActionCatalogWrite, rbac.Resource{}, true},
		{"cashier writes catalog", cashier, rbac.ActionCatalogWrite, rbac.Resource{}, false},
		{"user writes catalog", user, rbac.ActionCatalogWrite, rbac.Resource{}, false},
		{"guest reads catalog", nil, rbac.ActionCatalogRead, rbac.Resource{}, true},

		{"admin creates for anyone", admin, rbac.ActionOrderCreate, rbac.Owner(ptr(99)), true},
		{"admin creates guest order", admin, rbac.ActionOrderCreate, rbac.Owner(nil), true},
		{"user creates own", user, rbac.ActionOrderCreate, rbac.Owner(ptr(3)), true},
		{"user creates for other", user, rbac.ActionOrderCreate, rbac.Owner(ptr(5)), false},
		{"cashier creates own", cashier, rbac.ActionOrderCreate, rbac.Owner(ptr(2)), true},
		{"guest creates ownerless", nil, rbac.ActionOrderCreate, rbac.Owner(nil), true},
		{"guest creates for user", nil, rbac.ActionOrderCreate, rbac.Owner(ptr(3)), false},
		{"no-role creates own", noRole, rbac.ActionOrderCreate, rbac.Owner(ptr(4)), true},

		{"user reads own", user, rbac.ActionOrderReadOwn, rbac.Owner(ptr(3)), true},
		{"user reads other", user, rbac.ActionOrderReadOwn, rbac.Owner(ptr(5)), false},
		{"user reads any", user, rbac.ActionOrderReadAny, rbac.Resource{}, false},
		{"cashier reads any", cashier, rbac.ActionOrderReadAny, rbac.Resource{}, true},
		{"admin reads any", admin, rbac.ActionOrderReadAny, rbac.Resource{}, true},
		{"no-role reads own", noRole, rbac.ActionOrderReadOwn, rbac.Owner(ptr(4)), true},
		{"guest reads guest order", nil, rbac.ActionOrderReadOwn, rbac.Owner(nil), false},

		{"cashier marks paid", cashier, rbac.ActionOrderMarkPaid, rbac.Resource{}, true},
		{"cashier marks completed", cashier, rbac.ActionOrderMarkCompleted, rbac.Resource{}, true},
		{"admin marks paid", admin, rbac.ActionOrderMarkPaid, rbac.Resource{}, false},
		{"user marks paid", user, rbac.ActionOrderMarkPaid, rbac.Resource{}, false},

		{"admin updates order", admin, rbac.ActionOrderUpdate, rbac.Resource{}, true},
		{"cashier updates order", cashier, rbac.ActionOrderUpdate, rbac.Resource{}, false},

		{"admin manages cashiers", admin, rbac.ActionCashierManage, rbac.Resource{}, true},
		{"cashier manages cashiers", cashier, rbac.ActionCashierManage, rbac.Resource{}, false},
		{"admin deletes cashier", admin, rbac.ActionCashierDelete, rbac.Resource{TargetUserID: 2}, true},
		{"admin deletes self", admin, rbac.ActionCashierDelete, rbac.Resource{TargetUserID: 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := p.Decide(tc.actor, tc.action, tc.res)
			assert.Equal(t, tc.allow, d.Allowed)
			assert.Equal(t, tc.action, d.Action)
		})
	}
}

func TestDecisionIsORAcrossRoles(t *testing.T) {
	p := rbac.Policy{}
	both := actor(1, rbac.RoleAdmin, rbac.RoleCashier)

	assert.True(t, p.Decide(both, rbac.ActionOrderMarkPaid, rbac.Resource{}).Allowed)
	assert.True(t, p.Decide(both, rbac.ActionCatalogWrite, rbac.Resource{}).Allowed)
}

func TestGuestOrdersDisabled(t *testing.T) {
	p := rbac.Policy{GuestOrders: false}

	err := p.Decide(nil, rbac.ActionOrderCreate, rbac.Owner(nil)).Err()
	assert.ErrorIs(t, err, rbac.ErrAuthenticationRequired)

	err = p.Decide(actor(4), rbac.ActionOrderCreate, rbac.Owner(ptr(4))).Err()
	var denied *rbac.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "You can only place orders for yourself", denied.Reason)

	assert.True(t, p.Decide(actor(3, rbac.RoleUser), rbac.ActionOrderCreate, rbac.Owner(ptr(3))).Allowed)
}

func TestDenialReasons(t *testing.T) {
	p := rbac.Policy{GuestOrders: true}

	cases := map[string]rbac.Decision{
		"Admin access required":                 p.Decide(actor(2, rbac.RoleCashier), rbac.ActionCatalogWrite, rbac.Resource{}),
		"Only cashiers can change order status": p.Decide(actor(1, rbac.RoleAdmin), rbac.ActionOrderMarkCompleted, rbac.Resource{}),
		"You can only view your own orders":     p.Decide(actor(3, rbac.RoleUser), rbac.ActionOrderReadOwn, rbac.Owner(ptr(8))),
		"Cannot delete yourself":                p.Decide(actor(1, rbac.RoleAdmin), rbac.ActionCashierDelete, rbac.Resource{TargetUserID: 1}),
	}
	for reason, d := range cases {
		var denied *rbac.DeniedError
		require.True(t, errors.As(d.Err(), &denied), reason)
		assert.Equal(t, reason, denied.Reason)
	}
}

func TestGuestNeedsAuthentication(t *testing.T) {
	p := rbac.Policy{GuestOrders: true}

	for _, a := range []rbac.Action{rbac.ActionOrderReadAny, rbac.ActionOrderMarkPaid, rbac.ActionCatalogWrite} {
		d := p.Decide(nil, a, rbac.Resource{})
		assert.True(t, d.Unauthenticated, a.String())
		assert.ErrorIs(t, d.Err(), rbac.ErrAuthenticationRequired)
	}
}

func TestRoleSet(t *testing.T) {
	s := rbac.ParseRoleSet("Cashier", "unknown", "admin")
	assert.True(t, s.Has(rbac.RoleAdmin))
	assert.True(t, s.Has(rbac.RoleCashier))
	assert.False(t, s.Has(rbac.RoleUser))
	assert.Equal(t, []string{"admin", "cashier"}, s.Strings())

	var none rbac.RoleSet
	assert.True(t, none.IsEmpty())
	assert.False(t, none.With(rbac.RoleUser).IsEmpty())

	var guest *rbac.Actor
	assert.False(t, guest.Is(rbac.RoleAdmin))
}
