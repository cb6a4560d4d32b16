package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

// RoleRepository reads the role catalog.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) WithTx(tx *gorm.DB) *RoleRepository {
	return &RoleRepository{db: tx}
}

// FindByRole returns the catalog row for role.
func (r *RoleRepository) FindByRole(ctx context.Context, role rbac.Role) (models.Role, error) {
	var out models.Role
	err := r.db.WithContext(ctx).Where("name = ?", string(role)).First(&out).Error
	return out, err
}

// All returns the catalog ordered by id.
func (r *RoleRepository) All(ctx context.Context) ([]models.Role, error) {
	var out []models.Role
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}
