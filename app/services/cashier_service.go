package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/app/repositories"
	"github.com/shashiranjanraj/restopos/pkg/auth"
	"github.com/shashiranjanraj/restopos/pkg/logger"
	"github.com/shashiranjanraj/restopos/pkg/orm"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
	"github.com/shashiranjanraj/restopos/pkg/validate"
)

type CreateCashierInput struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
}

// UpdateCashierInput changes only the fields that are present.
type UpdateCashierInput struct {
	Name                 *string `json:"name"                  validate:"nullable,max=255"`
	Email                *string `json:"email"                 validate:"nullable,email,max=255"`
	Password             *string `json:"password"              validate:"nullable,min=8"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

// CashierService is the admin-only management of cashier accounts. Users
// without the cashier role are invisible to it.
type CashierService struct {
	db     *gorm.DB
	users  *repositories.UserRepository
	policy rbac.Policy
}

func NewCashierService(db *gorm.DB, policy rbac.Policy) *CashierService {
	return &CashierService{db: db, users: repositories.NewUserRepository(db), policy: policy}
}

func (s *CashierService) List(ctx context.Context, actor *rbac.Actor, page orm.Page) ([]models.User, orm.Pagination, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCashierManage, rbac.Resource{}); err != nil {
		return nil, orm.Pagination{}, err
	}
	users, p, err := s.users.PaginateByRole(ctx, rbac.RoleCashier, page)
	if err != nil {
		return nil, orm.Pagination{}, persistence("cashier.list", err)
	}
	return users, p, nil
}

func (s *CashierService) Create(ctx context.Context, actor *rbac.Actor, in CreateCashierInput) (*models.User, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCashierManage, rbac.Resource{}); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	user, err := createAccount(ctx, s.db, in.Name, in.Email, in.Password, rbac.RoleCashier)
	if err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("cashier created", "user_id", user.ID, "by", actor.ID)
	return user, nil
}

func (s *CashierService) Get(ctx context.Context, actor *rbac.Actor, id uint) (*models.User, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCashierManage, rbac.Resource{}); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *CashierService) Update(ctx context.Context, actor *rbac.Actor, id uint, in UpdateCashierInput) (*models.User, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCashierManage, rbac.Resource{}); err != nil {
		return nil, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}
	if in.Password != nil && (in.PasswordConfirmation == nil || *in.PasswordConfirmation != *in.Password) {
		return nil, invalid("password_confirmation", "The password confirmation does not match.")
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name", "The name field is required.")
		}
		user.Name = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		taken, err := s.users.EmailTaken(ctx, email, user.ID)
		if err != nil {
			return nil, persistence("cashier.update: check email", err)
		}
		if taken {
			return nil, &ConflictError{Message: "The email has already been taken."}
		}
		user.Email = email
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, persistence("cashier.update: hash", err)
		}
		user.Password = hash
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, persistence("cashier.update", err)
	}
	return user, nil
}

// Delete removes a cashier account. An admin cannot delete themselves.
func (s *CashierService) Delete(ctx context.Context, actor *rbac.Actor, id uint) error {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCashierDelete, rbac.Resource{TargetUserID: id}); err != nil {
		return err
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	err = orm.Transaction(ctx, s.db, "cashier.delete", func(tx *gorm.DB) error {
		return s.users.WithTx(tx).Delete(ctx, user)
	})
	if err != nil {
		return persistence("cashier.delete", err)
	}
	logger.WithCtx(ctx).Info("cashier deleted", "user_id", id, "by", actor.ID)
	return nil
}

func (s *CashierService) find(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByIDWithRole(ctx, id, rbac.RoleCashier)
	if repositories.IsNotFound(err) {
		return nil, notFound("Cashier", id)
	}
	if err != nil {
		return nil, persistence("cashier.show", err)
	}
	return &user, nil
}
