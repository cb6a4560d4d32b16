package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/pkg/orm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// withDetails preloads the owner and each item's menu. Menus are loaded
// unscoped so items keep their menu after it is soft-deleted.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.Menu", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

// Create inserts the order row only; items are added with AddItem.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Omit("User", "Items").Create(o).Error
}

func (r *OrderRepository) AddItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Omit("Menu").Create(item).Error
}

// SetTotal writes total_price for an order.
func (r *OrderRepository) SetTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("total_price", total).Error
}

// FindByID loads an order with owner, items and item menus.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).Scopes(withDetails).First(&o, id).Error
	return o, err
}

// Status reads just the current status of an order.
func (r *OrderRepository) Status(ctx context.Context, id uint) (models.OrderStatus, error) {
	var o models.Order
	err := r.db.WithContext(ctx).Select("id", "status").First(&o, id).Error
	return o.Status, err
}

// CompareAndSetStatus moves an order to `to` only if its current status is
// one of from. It reports whether the row matched. On MySQL this needs
// clientFoundRows, which pkg/database sets on every DSN.
func (r *OrderRepository) CompareAndSetStatus(ctx context.Context, id uint, to models.OrderStatus, from []models.OrderStatus) (bool, error) {
	prior := make([]string, len(from))
	for i, s := range from {
		prior[i] = string(s)
	}
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, prior).
		Update("status", string(to))
	return res.RowsAffected > 0, res.Error
}

// UpdateFields applies a column → value map to one order.
func (r *OrderRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

// Paginate lists orders newest first. A non-nil ownerID restricts the
// listing to that user's orders.
func (r *OrderRepository) Paginate(ctx context.Context, ownerID *uint, page orm.Page) ([]models.Order, orm.Pagination, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if ownerID != nil {
		q = q.Where("orders.user_id = ?", *ownerID)
	}

	var orders []models.Order
	p, err := orm.Paginate(q, page, "orders.created_at desc, orders.id desc", &orders, withDetails)
	return orders, p, err
}
