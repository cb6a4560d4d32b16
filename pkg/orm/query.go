// Package orm holds small gorm helpers shared by the repositories.
package orm

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/pkg/metrics"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// Page is a requested page of a listing. Zero values mean "first page,
// default size".
type Page struct {
	Number  int
	PerPage int
}

// Normalize clamps the page into valid bounds.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Pagination is the metadata returned alongside a paginated listing.
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// Paginate counts q, then loads one page of it, sorted by order, into dest.
// scopes (typically preloads) apply to the page query only.
func Paginate(q *gorm.DB, page Page, order string, dest interface{}, scopes ...func(*gorm.DB) *gorm.DB) (Pagination, error) {
	page = page.Normalize()

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page.Number - 1) * page.PerPage
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Scopes(scopes...).Offset(offset).Limit(page.PerPage).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	last := int(math.Ceil(float64(total) / float64(page.PerPage)))
	if last < 1 {
		last = 1
	}

	return Pagination{
		Total:       total,
		PerPage:     page.PerPage,
		CurrentPage: page.Number,
		LastPage:    last,
	}, nil
}

// Transaction runs fn inside a database transaction bound to ctx and records
// its duration under operation.
func Transaction(ctx context.Context, db *gorm.DB, operation string, fn func(tx *gorm.DB) error) error {
	defer metrics.ObserveDBQuery(operation, time.Now())
	return db.WithContext(ctx).Transaction(fn)
}
