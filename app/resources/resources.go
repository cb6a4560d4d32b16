// Package resources defines the JSON shapes of restopos API responses.
// Money is always rendered as a fixed two-decimal string.
package resources

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/resource"
)

// Money renders d as "12.50".
func Money(d decimal.Decimal) string { return d.StringFixed(2) }

func timestamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func Role(r models.Role) resource.Map {
	return resource.Map{
		"id":           r.ID,
		"name":         r.Name,
		"display_name": r.DisplayName,
	}
}

func User(u models.User) resource.Map {
	return resource.Map{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"roles":      u.RoleSet().Strings(),
		"created_at": timestamp(u.CreatedAt),
	}
}

// UserWithRoles includes the full role rows, for GET /api/user.
func UserWithRoles(u models.User) resource.Map {
	out := User(u)
	out["role_details"] = resource.Collection(u.Roles, Role)
	return out
}

func Category(c models.Category) resource.Map {
	return resource.Map{
		"id":         c.ID,
		"name":       c.Name,
		"created_at": timestamp(c.CreatedAt),
		"updated_at": timestamp(c.UpdatedAt),
	}
}

func Menu(m models.Menu) resource.Map {
	return resource.Map{
		"id":          m.ID,
		"name":        m.Name,
		"description": m.Description,
		"price":       Money(m.Price),
		"category_id": m.CategoryID,
	}.When(m.Category != nil, "category", func() interface{} {
		return Category(*m.Category)
	})
}

// menuSummary is the menu as embedded in an order item.
func menuSummary(m models.Menu) resource.Map {
	return resource.Map{
		"id":          m.ID,
		"name":        m.Name,
		"price":       Money(m.Price),
		"description": m.Description,
	}
}

func OrderItem(i models.OrderItem) resource.Map {
	return resource.Map{
		"id":       i.ID,
		"order_id": i.OrderID,
		"menu_id":  i.MenuID,
		"quantity": i.Quantity,
		"price":    Money(i.Price),
		"subtotal": Money(i.Subtotal()),
	}.When(i.Menu != nil, "menu", func() interface{} {
		return menuSummary(*i.Menu)
	})
}

func Order(o models.Order) resource.Map {
	out := resource.Map{
		"id":           o.ID,
		"user_id":      o.UserID,
		"table_number": o.TableNumber,
		"status":       o.Status,
		"total_price":  Money(o.TotalPrice),
		"items":        resource.Collection(o.Items, OrderItem),
		"created_at":   timestamp(o.CreatedAt),
		"updated_at":   timestamp(o.UpdatedAt),
	}
	return out.When(o.User != nil, "user", func() interface{} {
		return resource.Map{"id": o.User.ID, "name": o.User.Name, "email": o.User.Email}
	})
}

// AuthPayload is the body of register and login responses.
func AuthPayload(u models.User, tok services.Token) resource.Map {
	return resource.Map{
		"user":         User(u),
		"access_token": tok.AccessToken,
		"token_type":   tok.TokenType,
		"expires_at":   timestamp(tok.ExpiresAt),
	}
}
