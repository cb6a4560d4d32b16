package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
)

// MenuRepository handles database operations for Menu.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) WithTx(tx *gorm.DB) *MenuRepository {
	return &MenuRepository{db: tx}
}

// All returns every live menu with its category.
func (r *MenuRepository) All(ctx context.Context) ([]models.Menu, error) {
	var out []models.Menu
	err := r.db.WithContext(ctx).Preload("Category").Order("id").Find(&out).Error
	return out, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (models.Menu, error) {
	var out models.Menu
	err := r.db.WithContext(ctx).Preload("Category").First(&out, id).Error
	return out, err
}

// CountByCategory counts live menus in a category.
func (r *MenuRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Menu{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

func (r *MenuRepository) Create(ctx context.Context, m *models.Menu) error {
	return r.db.WithContext(ctx).Omit("Category").Create(m).Error
}

func (r *MenuRepository) Save(ctx context.Context, m *models.Menu) error {
	return r.db.WithContext(ctx).Omit("Category").Save(m).Error
}

// Delete soft-deletes the menu; existing order items keep referencing it.
func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Menu{}, id).Error
}
