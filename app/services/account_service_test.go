package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/auth"
	"github.com/shashiranjanraj/restopos/pkg/orm"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
	"github.com/shashiranjanraj/restopos/pkg/testkit"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()

	user, tok, err := svc.Register(ctx, services.RegisterInput{
		Name: "Ada", Email: "Ada@Example.com", Password: "secret123", PasswordConfirmation: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.True(t, user.HasRole(rbac.RoleUser))
	assert.Equal(t, "Bearer", tok.TokenType)

	claims, err := auth.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = svc.Register(ctx, services.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret123", PasswordConfirmation: "secret123",
	})
	var ce *services.ConflictError
	assert.True(t, errors.As(err, &ce), "got %v", err)

	logged, _, err := svc.Login(ctx, services.LoginInput{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = svc.Login(ctx, services.LoginInput{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, services.LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()
	actor := testkit.CreateUser(t, db, "user@example.com", rbac.RoleUser).Actor()

	err := svc.ChangePassword(ctx, actor, services.ChangePasswordInput{
		CurrentPassword: "nope", Password: "newpassword", PasswordConfirmation: "newpassword",
	})
	var ve *services.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "current_password")

	require.NoError(t, svc.ChangePassword(ctx, actor, services.ChangePasswordInput{
		CurrentPassword: testkit.Password, Password: "newpassword", PasswordConfirmation: "newpassword",
	}))

	_, _, err = svc.Login(ctx, services.LoginInput{Email: "user@example.com", Password: "newpassword"})
	assert.NoError(t, err)
}

func TestResolveActor(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()
	u := testkit.CreateUser(t, db, "both@example.com", rbac.RoleAdmin, rbac.RoleCashier)

	actor, err := svc.ResolveActor(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, rbac.NewRoleSet(rbac.RoleAdmin, rbac.RoleCashier), actor.Roles)

	actor, err = svc.ResolveActor(ctx, 777)
	require.NoError(t, err)
	assert.Nil(t, actor)
}

func TestCashierManagement(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCashierService(db, rbac.Policy{})
	ctx := context.Background()
	admin := testkit.CreateUser(t, db, "admin@example.com", rbac.RoleAdmin).Actor()
	plain := testkit.CreateUser(t, db, "user@example.com", rbac.RoleUser)

	c, err := svc.Create(ctx, admin, services.CreateCashierInput{
		Name: "Cash", Email: "cash@example.com", Password: "password1", PasswordConfirmation: "password1",
	})
	require.NoError(t, err)
	assert.True(t, c.HasRole(rbac.RoleCashier))

	_, err = svc.Create(ctx, admin, services.CreateCashierInput{
		Name: "Cash", Email: "cash@example.com", Password: "password1", PasswordConfirmation: "password1",
	})
	var ce *services.ConflictError
	assert.True(t, errors.As(err, &ce))

	_, err = svc.Create(ctx, admin, services.CreateCashierInput{
		Name: "Short", Email: "short@example.com", Password: "pw", PasswordConfirmation: "pw",
	})
	var ve *services.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "password")

	list, p, err := svc.List(ctx, admin, orm.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 1, p.Total)

	_, err = svc.Get(ctx, admin, plain.ID)
	assert.ErrorIs(t, err, services.ErrNotFound, "non-cashiers are invisible")

	name := "Renamed"
	updated, err := svc.Update(ctx, admin, c.ID, services.UpdateCashierInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	taken := "user@example.com"
	_, err = svc.Update(ctx, admin, c.ID, services.UpdateCashierInput{Email: &taken})
	assert.True(t, errors.As(err, &ce))

	cashierActor := c.Actor()
	_, _, err = svc.List(ctx, cashierActor, orm.Page{})
	var denied *rbac.DeniedError
	assert.True(t, errors.As(err, &denied))

	require.NoError(t, svc.Delete(ctx, admin, c.ID))
	_, err = svc.Get(ctx, admin, c.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	var links int64
	require.NoError(t, db.Table("role_user").Where("user_id = ?", c.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewCashierService(db, rbac.Policy{})
	u := testkit.CreateUser(t, db, "boss@example.com", rbac.RoleAdmin, rbac.RoleCashier)

	err := svc.Delete(context.Background(), u.Actor(), u.ID)
	var denied *rbac.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "Cannot delete yourself", denied.Reason)

	var n int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", u.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()
	user := testkit.CreateUser(t, db, "ada@example.com", rbac.RoleUser)

	claims, err := auth.ValidateToken(testkit.Token(t, user))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.Actor(), claims))
	revoked, err := auth.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogoutNeedsMatchingToken(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()
	ada := testkit.CreateUser(t, db, "ada@example.com", rbac.RoleUser)
	bob := testkit.CreateUser(t, db, "bob@example.com", rbac.RoleUser)

	bobClaims, err := auth.ValidateToken(testkit.Token(t, bob))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Logout(ctx, nil, bobClaims), rbac.ErrAuthenticationRequired)
	assert.ErrorIs(t, svc.Logout(ctx, ada.Actor(), nil), rbac.ErrAuthenticationRequired)
	assert.ErrorIs(t, svc.Logout(ctx, ada.Actor(), bobClaims), rbac.ErrAuthenticationRequired)

	revoked, err := auth.IsRevoked(ctx, bobClaims)
	require.NoError(t, err)
	assert.False(t, revoked)
}
