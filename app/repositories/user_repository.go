package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/orm"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindByID looks up a user by primary key with roles loaded.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error
	return user, err
}

// FindByEmail looks up a user by email address with roles loaded.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&user).Error
	return user, err
}

// Exists reports whether a user with id exists.
func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// EmailTaken reports whether email belongs to a user other than exceptID.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	return n > 0, err
}

// Create persists a new user and attaches roles.
func (r *UserRepository) Create(ctx context.Context, user *models.User, roles ...models.Role) error {
	user.Roles = roles
	return r.db.WithContext(ctx).Create(user).Error
}

// Save persists changes to an existing user's own columns.
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit("Roles").Save(user).Error
}

// Delete detaches all roles and removes the user.
func (r *UserRepository) Delete(ctx context.Context, user *models.User) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(user).Association("Roles").Clear(); err != nil {
		return err
	}
	return db.Delete(&models.User{}, user.ID).Error
}

func preloadRoles(db *gorm.DB) *gorm.DB { return db.Preload("Roles") }

func (r *UserRepository) withRole(ctx context.Context, role rbac.Role) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("users.id IN (?)", r.db.Table("role_user").
			Select("role_user.user_id").
			Joins("JOIN roles ON roles.id = role_user.role_id").
			Where("roles.name = ?", string(role)))
}

// PaginateByRole lists users holding role, newest first.
func (r *UserRepository) PaginateByRole(ctx context.Context, role rbac.Role, page orm.Page) ([]models.User, orm.Pagination, error) {
	var users []models.User
	p, err := orm.Paginate(r.withRole(ctx, role), page, "users.id desc", &users, preloadRoles)
	return users, p, err
}

// FindByIDWithRole loads a user only if it holds role.
func (r *UserRepository) FindByIDWithRole(ctx context.Context, id uint, role rbac.Role) (models.User, error) {
	var user models.User
	err := r.withRole(ctx, role).Preload("Roles").Where("users.id = ?", id).First(&user).Error
	return user, err
}
