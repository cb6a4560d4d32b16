package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/restopos/pkg/validate"
)

type cashierInput struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	Role                 string `json:"role"                  validate:"nullable,in=admin,cashier,user"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(cashierInput{
		Name:                 "Cashier",
		Email:                "cashier@example.com",
		Password:             "password",
		PasswordConfirmation: "password",
	})
	assert.False(t, validate.HasErrors(errs), "%v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(cashierInput{})
	assert.Equal(t, "The name field is required.", errs["name"])
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	assert.Contains(t, validate.Struct(in{Email: "not-an-email"}), "email")
	assert.Empty(t, validate.Struct(in{Email: "valid@example.com"}))
}

func TestConfirmedRule(t *testing.T) {
	errs := validate.Struct(cashierInput{
		Name:                 "Cashier",
		Email:                "cashier@example.com",
		Password:             "password",
		PasswordConfirmation: "different",
	})
	assert.Equal(t, "The password confirmation does not match.", errs["password_confirmation"])
}

func TestInRuleKeepsMultipleValues(t *testing.T) {
	ok := cashierInput{Name: "a", Email: "a@b.co", Password: "password", PasswordConfirmation: "password", Role: "cashier"}
	assert.Empty(t, validate.Struct(ok))

	ok.Role = "owner"
	assert.Equal(t, "The selected role is invalid.", validate.Struct(ok)["role"])
}

func TestStringLength(t *testing.T) {
	type in struct {
		Table string `json:"table_number" validate:"required,max=5"`
	}
	assert.Empty(t, validate.Struct(in{Table: "A-12"}))
	assert.Equal(t, "The table_number must not be greater than 5 characters.",
		validate.Struct(in{Table: "A-123456"})["table_number"])
}

func TestPointerFields(t *testing.T) {
	type in struct {
		UserID *uint   `json:"user_id" validate:"nullable,gte=1"`
		Note   *string `json:"note"    validate:"required"`
	}
	note := "window seat"
	zero := uint(0)

	assert.Empty(t, validate.Struct(in{Note: &note}))
	assert.Contains(t, validate.Struct(in{}), "note")
	assert.Contains(t, validate.Struct(in{UserID: &zero, Note: &note}), "user_id")
}

func TestDecimalIsNumeric(t *testing.T) {
	type in struct {
		Price decimal.Decimal `json:"price" validate:"gte=0"`
	}
	assert.Empty(t, validate.Struct(in{Price: decimal.RequireFromString("12.50")}))
	assert.Equal(t, "The price must be greater than or equal to 0.",
		validate.Struct(in{Price: decimal.RequireFromString("-0.01")})["price"])
}

func TestDiveIntoSlice(t *testing.T) {
	type item struct {
		MenuID   uint `json:"menu_id"  validate:"required"`
		Quantity int  `json:"quantity" validate:"required,gte=1"`
	}
	type order struct {
		Items []item `json:"items" validate:"required,min=1,dive"`
	}

	errs := validate.Struct(order{Items: []item{
		{MenuID: 1, Quantity: 2},
		{MenuID: 0, Quantity: 1},
		{MenuID: 3, Quantity: -1},
	}})

	assert.Len(t, errs, 2)
	assert.Equal(t, "The items.1.menu_id field is required.", errs["items.1.menu_id"])
	assert.Contains(t, errs, "items.2.quantity")
}

func TestEmptySliceFailsBeforeDive(t *testing.T) {
	type item struct {
		Quantity int `json:"quantity" validate:"gte=1"`
	}
	type order struct {
		Items []item `json:"items" validate:"required,min=1,dive"`
	}

	errs := validate.Struct(order{Items: []item{}})
	assert.Equal(t, map[string]string{"items": "The items field is required."}, errs)
}

func TestSliceLengthBounds(t *testing.T) {
	type in struct {
		Tags []string `json:"tags" validate:"max=2"`
	}
	assert.Equal(t, "The tags must not be greater than 2 items.",
		validate.Struct(in{Tags: []string{"a", "b", "c"}})["tags"])
}
