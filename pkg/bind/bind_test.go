package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/restopos/pkg/bind"
)

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestJSONValid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co","password":"x"}`))

	var in loginInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "a@b.co", in.Email)
}

func TestJSONValidationErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"nope"}`))

	var in loginInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))

	_, err := bind.JSON(req, &loginInput{})
	assert.ErrorIs(t, err, bind.ErrEmptyBody)
}

func TestJSONMalformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))

	_, err := bind.JSON(req, &loginInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
