package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/app/repositories"
	"github.com/shashiranjanraj/restopos/pkg/auth"
	"github.com/shashiranjanraj/restopos/pkg/logger"
	"github.com/shashiranjanraj/restopos/pkg/orm"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
	"github.com/shashiranjanraj/restopos/pkg/validate"
)

type RegisterInput struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
}

type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword      string `json:"current_password"      validate:"required"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
}

// Token is an issued bearer token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService handles accounts and tokens. It also resolves token subjects
// into actors for the authentication middleware.
type AuthService struct {
	db    *gorm.DB
	users *repositories.UserRepository
	roles *repositories.RoleRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:    db,
		users: repositories.NewUserRepository(db),
		roles: repositories.NewRoleRepository(db),
	}
}

func issue(userID uint) (Token, error) {
	token, exp, err := auth.GenerateToken(userID)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp}, nil
}

// Register creates an account holding the user role and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, Token, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, Token{}, &ValidationError{Fields: errs}
	}

	user, err := createAccount(ctx, s.db, in.Name, in.Email, in.Password, rbac.RoleUser)
	if err != nil {
		return nil, Token{}, err
	}

	tok, err := issue(user.ID)
	if err != nil {
		return nil, Token{}, persistence("auth.register: token", err)
	}
	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID)
	return user, tok, nil
}

// Login checks credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, Token, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, Token{}, &ValidationError{Fields: errs}
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if repositories.IsNotFound(err) {
		return nil, Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return nil, Token{}, persistence("auth.login", err)
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return nil, Token{}, ErrInvalidCredentials
	}

	tok, err := issue(user.ID)
	if err != nil {
		return nil, Token{}, persistence("auth.login: token", err)
	}
	return &user, tok, nil
}

// Me returns the actor's account with roles.
func (s *AuthService) Me(ctx context.Context, actor *rbac.Actor) (*models.User, error) {
	if actor == nil {
		return nil, rbac.ErrAuthenticationRequired
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if repositories.IsNotFound(err) {
		return nil, notFound("User", actor.ID)
	}
	if err != nil {
		return nil, persistence("auth.me", err)
	}
	return &user, nil
}

// ChangePassword replaces the actor's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, actor *rbac.Actor, in ChangePasswordInput) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	user, err := s.Me(ctx, actor)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, in.CurrentPassword) {
		return invalid("current_password", "The current password is incorrect.")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return persistence("auth.change_password: hash", err)
	}
	user.Password = hash
	if err := s.users.Save(ctx, user); err != nil {
		return persistence("auth.change_password", err)
	}
	return nil
}

// Logout revokes the bearer token the actor authenticated with. The token
// stays denylisted until it would have expired.
func (s *AuthService) Logout(ctx context.Context, actor *rbac.Actor, claims *auth.Claims) error {
	if actor == nil || claims == nil || claims.UserID != actor.ID {
		return rbac.ErrAuthenticationRequired
	}
	if err := auth.Revoke(ctx, claims); err != nil {
		return persistence("auth.logout", err)
	}
	logger.WithCtx(ctx).Info("user logged out", "user_id", actor.ID)
	return nil
}

// ResolveActor loads the roles of a token subject. A missing user yields
// (nil, nil).
func (s *AuthService) ResolveActor(ctx context.Context, userID uint) (*rbac.Actor, error) {
	user, err := s.users.FindByID(ctx, userID)
	if repositories.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user.Actor(), nil
}

// createAccount hashes password and inserts a user holding role, all in one
// transaction. A taken email is a ConflictError.
func createAccount(ctx context.Context, db *gorm.DB, name, email, password string, role rbac.Role) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, persistence("account.create: hash", err)
	}

	user := models.User{Name: name, Email: email, Password: hash}
	err = orm.Transaction(ctx, db, "account.create", func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)

		taken, err := users.EmailTaken(ctx, email, 0)
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Message: "The email has already been taken."}
		}

		r, err := repositories.NewRoleRepository(tx).FindByRole(ctx, role)
		if err != nil {
			return err
		}
		return users.Create(ctx, &user, r)
	})
	if err != nil {
		return nil, persistence("account.create", err)
	}
	return &user, nil
}
