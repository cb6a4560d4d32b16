package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/app/repositories"
	"github.com/shashiranjanraj/restopos/pkg/cache"
	"github.com/shashiranjanraj/restopos/pkg/logger"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
	"github.com/shashiranjanraj/restopos/pkg/validate"
)

const (
	categoriesCacheKey = "catalog:categories"
	menusCacheKey      = "catalog:menus"
)

// CategoryInput is the payload for creating or renaming a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// MenuInput is the payload for creating or replacing a menu.
type MenuInput struct {
	Name        string           `json:"name"        validate:"required,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0,lte=99999999.99"`
	CategoryID  uint             `json:"category_id" validate:"required"`
}

// CatalogService manages categories and menus. Listings are served through
// the Redis cache and invalidated on every write.
type CatalogService struct {
	categories *repositories.CategoryRepository
	menus      *repositories.MenuRepository
	policy     rbac.Policy
	ttl        time.Duration
}

func NewCatalogService(db *gorm.DB, policy rbac.Policy, ttl time.Duration) *CatalogService {
	return &CatalogService{
		categories: repositories.NewCategoryRepository(db),
		menus:      repositories.NewMenuRepository(db),
		policy:     policy,
		ttl:        ttl,
	}
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := cache.Del(ctx, categoriesCacheKey, menusCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("catalog: cache invalidation failed", "error", err)
	}
}

// ─── Categories ───────────────────────────────────────────────────────────────

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := cache.Remember(ctx, categoriesCacheKey, s.ttl, &out, func() (err error) {
		out, err = s.categories.All(ctx)
		return err
	})
	if err != nil {
		return nil, persistence("category.list", err)
	}
	return out, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, notFound("Category", id)
	}
	if err != nil {
		return nil, persistence("category.show", err)
	}
	return &c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor *rbac.Actor, in CategoryInput) (*models.Category, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCatalogWrite, rbac.Resource{}); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	c := models.Category{Name: in.Name}
	if err := s.categories.Create(ctx, &c); err != nil {
		return nil, persistence("category.create", err)
	}
	s.invalidate(ctx)
	return &c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, actor *rbac.Actor, id uint, in CategoryInput) (*models.Category, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCatalogWrite, rbac.Resource{}); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, persistence("category.update", err)
	}
	s.invalidate(ctx)
	return c, nil
}

// DeleteCategory refuses while live menus still point at the category.
func (s *CatalogService) DeleteCategory(ctx context.Context, actor *rbac.Actor, id uint) error {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCatalogWrite, rbac.Resource{}); err != nil {
		return err
	}
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	n, err := s.menus.CountByCategory(ctx, id)
	if err != nil {
		return persistence("category.delete: count menus", err)
	}
	if n > 0 {
		return &ConflictError{Message: "Category still has menus"}
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return persistence("category.delete", err)
	}
	s.invalidate(ctx)
	return nil
}

// ─── Menus ────────────────────────────────────────────────────────────────────

func (s *CatalogService) ListMenus(ctx context.Context) ([]models.Menu, error) {
	var out []models.Menu
	err := cache.Remember(ctx, menusCacheKey, s.ttl, &out, func() (err error) {
		out, err = s.menus.All(ctx)
		return err
	})
	if err != nil {
		return nil, persistence("menu.list", err)
	}
	return out, nil
}

func (s *CatalogService) GetMenu(ctx context.Context, id uint) (*models.Menu, error) {
	m, err := s.menus.FindByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, notFound("Menu", id)
	}
	if err != nil {
		return nil, persistence("menu.show", err)
	}
	return &m, nil
}

func (s *CatalogService) checkMenu(ctx context.Context, in *MenuInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	ok, err := s.categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return persistence("menu: check category", err)
	}
	if !ok {
		return invalid("category_id", "The selected category id is invalid.")
	}
	return nil
}

func (s *CatalogService) CreateMenu(ctx context.Context, actor *rbac.Actor, in MenuInput) (*models.Menu, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCatalogWrite, rbac.Resource{}); err != nil {
		return nil, err
	}
	if err := s.checkMenu(ctx, &in); err != nil {
		return nil, err
	}

	m := models.Menu{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		CategoryID:  in.CategoryID,
	}
	if err := s.menus.Create(ctx, &m); err != nil {
		return nil, persistence("menu.create", err)
	}
	s.invalidate(ctx)
	return s.GetMenu(ctx, m.ID)
}

// UpdateMenu replaces a menu's fields. Orders already placed keep the price
// they were placed at.
func (s *CatalogService) UpdateMenu(ctx context.Context, actor *rbac.Actor, id uint, in MenuInput) (*models.Menu, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCatalogWrite, rbac.Resource{}); err != nil {
		return nil, err
	}
	m, err := s.GetMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkMenu(ctx, &in); err != nil {
		return nil, err
	}

	m.Name = in.Name
	m.Description = in.Description
	m.Price = in.Price.Round(2)
	m.CategoryID = in.CategoryID
	m.Category = nil
	if err := s.menus.Save(ctx, m); err != nil {
		return nil, persistence("menu.update", err)
	}
	s.invalidate(ctx)
	return s.GetMenu(ctx, id)
}

func (s *CatalogService) DeleteMenu(ctx context.Context, actor *rbac.Actor, id uint) error {
	if err := authorize(ctx, s.policy, actor, rbac.ActionCatalogWrite, rbac.Resource{}); err != nil {
		return err
	}
	if _, err := s.GetMenu(ctx, id); err != nil {
		return err
	}
	if err := s.menus.Delete(ctx, id); err != nil {
		return persistence("menu.delete", err)
	}
	s.invalidate(ctx)
	return nil
}
