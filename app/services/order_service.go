package services

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/restopos/app/events"
	"github.com/shashiranjanraj/restopos/app/models"
	"github.com/shashiranjanraj/restopos/app/repositories"
	"github.com/shashiranjanraj/restopos/pkg/event"
	"github.com/shashiranjanraj/restopos/pkg/logger"
	"github.com/shashiranjanraj/restopos/pkg/metrics"
	"github.com/shashiranjanraj/restopos/pkg/orm"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
	"github.com/shashiranjanraj/restopos/pkg/validate"
)

// maxOrderTotal is the largest amount a decimal(10,2) column holds.
var maxOrderTotal = decimal.RequireFromString("99999999.99")

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	MenuID   uint `json:"menu_id"  validate:"required"`
	Quantity int  `json:"quantity" validate:"required,gte=1,lte=1000"`
}

// CreateOrderInput is the payload for OrderService.Create.
type CreateOrderInput struct {
	TableNumber string           `json:"table_number" validate:"required,max=255"`
	UserID      *uint            `json:"user_id"      validate:"nullable,gte=1"`
	Items       []OrderItemInput `json:"items"        validate:"required,min=1,dive"`
}

// OrderPatch lists the fields an admin update touches. A nil field is left
// alone; ClearUser turns the order into a guest order.
type OrderPatch struct {
	TableNumber *string
	UserID      *uint
	ClearUser   bool
	// Status is set when the caller tried to change status directly.
	Status bool
	// Invalid holds keys of the body that could not be decoded. It is
	// reported only once the caller is allowed to update orders.
	Invalid map[string]string
}

// OrderService implements the order lifecycle. Every method takes the
// acting user explicitly; nil means guest.
type OrderService struct {
	db     *gorm.DB
	orders *repositories.OrderRepository
	menus  *repositories.MenuRepository
	users  *repositories.UserRepository
	policy rbac.Policy
}

func NewOrderService(db *gorm.DB, policy rbac.Policy) *OrderService {
	return &OrderService{
		db:     db,
		orders: repositories.NewOrderRepository(db),
		menus:  repositories.NewMenuRepository(db),
		users:  repositories.NewUserRepository(db),
		policy: policy,
	}
}

// resolveOwner picks the order owner: an explicit user_id wins, otherwise a
// non-admin actor owns the order and an admin or guest creates a guest order.
func resolveOwner(actor *rbac.Actor, requested *uint) *uint {
	if requested != nil {
		id := *requested
		return &id
	}
	if actor != nil && !actor.Is(rbac.RoleAdmin) {
		id := actor.ID
		return &id
	}
	return nil
}

// Create places an order. The order row, every item and the total are
// written in one transaction; item prices are read from the menu rows
// inside that transaction.
func (s *OrderService) Create(ctx context.Context, actor *rbac.Actor, in CreateOrderInput) (*models.Order, error) {
	in.TableNumber = strings.TrimSpace(in.TableNumber)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	owner := resolveOwner(actor, in.UserID)
	if err := authorize(ctx, s.policy, actor, rbac.ActionOrderCreate, rbac.Owner(owner)); err != nil {
		return nil, err
	}

	if owner != nil {
		ok, err := s.users.Exists(ctx, *owner)
		if err != nil {
			return nil, persistence("order.create: check owner", err)
		}
		if !ok {
			return nil, invalid("user_id", "The selected user id is invalid.")
		}
	}

	var orderID uint
	err := orm.Transaction(ctx, s.db, "order.create", func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		menus := s.menus.WithTx(tx)

		order := models.Order{
			UserID:      owner,
			TableNumber: in.TableNumber,
			Status:      models.StatusPending,
			TotalPrice:  decimal.Zero,
		}
		if err := orders.Create(ctx, &order); err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range in.Items {
			menu, err := menus.FindByID(ctx, line.MenuID)
			if repositories.IsNotFound(err) {
				return notFound("Menu", line.MenuID)
			}
			if err != nil {
				return err
			}

			item := models.OrderItem{
				OrderID:  order.ID,
				MenuID:   menu.ID,
				Quantity: line.Quantity,
				Price:    menu.Price,
			}
			if err := orders.AddItem(ctx, &item); err != nil {
				return err
			}
			total = total.Add(item.Subtotal())
		}
		if total.GreaterThan(maxOrderTotal) {
			return invalid("items", "The order total must not be greater than "+maxOrderTotal.StringFixed(2)+".")
		}

		if err := orders.SetTotal(ctx, order.ID, total); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, persistence("order.create", err)
	}

	ownerLabel := "guest"
	if owner != nil {
		ownerLabel = "user"
	}
	metrics.OrdersCreated.WithLabelValues(ownerLabel).Inc()
	logger.WithCtx(ctx).Info("order created", "order_id", orderID, "owner", ownerLabel, "items", len(in.Items))

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var actorID *uint
	if actor != nil {
		actorID = &actor.ID
	}
	event.Fire(ctx, events.OrderPlaced, events.OrderPlacedPayload{
		OrderID: order.ID,
		OwnerID: order.UserID,
		ActorID: actorID,
		Total:   order.TotalPrice,
		Items:   len(order.Items),
	})
	return order, nil
}

// MarkAsPaid moves a pending or paid order to paid.
func (s *OrderService) MarkAsPaid(ctx context.Context, actor *rbac.Actor, id uint) (*models.Order, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionOrderMarkPaid, rbac.Resource{}); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, id, models.StatusPaid)
}

// MarkAsCompleted moves a paid order to completed.
func (s *OrderService) MarkAsCompleted(ctx context.Context, actor *rbac.Actor, id uint) (*models.Order, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionOrderMarkCompleted, rbac.Resource{}); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, id, models.StatusCompleted)
}

func (s *OrderService) transition(ctx context.Context, actor *rbac.Actor, id uint, to models.OrderStatus) (*models.Order, error) {
	ok, err := s.orders.CompareAndSetStatus(ctx, id, to, models.AllowedFrom(to))
	if err != nil {
		return nil, persistence("order.transition", err)
	}

	if !ok {
		current, err := s.orders.Status(ctx, id)
		if repositories.IsNotFound(err) {
			return nil, notFound("Order", id)
		}
		if err != nil {
			return nil, persistence("order.transition: reload", err)
		}

		metrics.OrderTransitions.WithLabelValues(string(to), "rejected").Inc()
		return nil, &TransitionError{From: current, To: to, Message: transitionMessage(to)}
	}

	metrics.OrderTransitions.WithLabelValues(string(to), "applied").Inc()
	logger.WithCtx(ctx).Info("order status changed", "order_id", id, "status", string(to))
	event.Fire(ctx, events.OrderStatusChanged, events.OrderStatusChangedPayload{OrderID: id, Status: to, ActorID: actor.ID})
	return s.load(ctx, id)
}

func transitionMessage(to models.OrderStatus) string {
	switch to {
	case models.StatusPaid:
		return "Order is already completed"
	case models.StatusCompleted:
		return "Order must be paid before marking as completed"
	}
	return "Invalid status transition"
}

// Update changes table_number and/or owner. Status cannot be set here;
// a patch carrying it is refused as a whole.
func (s *OrderService) Update(ctx context.Context, actor *rbac.Actor, id uint, patch OrderPatch) (*models.Order, error) {
	if err := authorize(ctx, s.policy, actor, rbac.ActionOrderUpdate, rbac.Resource{}); err != nil {
		return nil, err
	}
	if patch.Status {
		metrics.AuthorizationDenials.WithLabelValues(rbac.ActionOrderUpdate.String()).Inc()
		return nil, &rbac.DeniedError{
			Action: rbac.ActionOrderUpdate,
			Reason: "Order status can only be changed by a cashier via mark-paid or mark-completed",
		}
	}
	if len(patch.Invalid) > 0 {
		return nil, &ValidationError{Fields: patch.Invalid}
	}

	fields := map[string]interface{}{}
	if patch.TableNumber != nil {
		table := strings.TrimSpace(*patch.TableNumber)
		switch {
		case table == "":
			return nil, invalid("table_number", "The table_number field is required.")
		case len([]rune(table)) > 255:
			return nil, invalid("table_number", "The table_number must not be greater than 255 characters.")
		}
		fields["table_number"] = table
	}
	switch {
	case patch.ClearUser:
		fields["user_id"] = nil
	case patch.UserID != nil:
		ok, err := s.users.Exists(ctx, *patch.UserID)
		if err != nil {
			return nil, persistence("order.update: check owner", err)
		}
		if !ok {
			return nil, invalid("user_id", "The selected user id is invalid.")
		}
		fields["user_id"] = *patch.UserID
	}

	if _, err := s.orders.Status(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return nil, notFound("Order", id)
		}
		return nil, persistence("order.update: load", err)
	}

	if len(fields) > 0 {
		if err := s.orders.UpdateFields(ctx, id, fields); err != nil {
			return nil, persistence("order.update", err)
		}

		changed := make([]string, 0, len(fields))
		for k := range fields {
			changed = append(changed, k)
		}
		sort.Strings(changed)
		event.Fire(ctx, events.OrderUpdated, events.OrderUpdatedPayload{OrderID: id, Fields: changed, ActorID: actor.ID})
	}
	return s.load(ctx, id)
}

// List pages through the orders visible to actor, newest first.
func (s *OrderService) List(ctx context.Context, actor *rbac.Actor, page orm.Page) ([]models.Order, orm.Pagination, error) {
	if actor == nil {
		return nil, orm.Pagination{}, rbac.ErrAuthenticationRequired
	}

	var owner *uint
	if !s.policy.Decide(actor, rbac.ActionOrderReadAny, rbac.Resource{}).Allowed {
		id := actor.ID
		if err := authorize(ctx, s.policy, actor, rbac.ActionOrderReadOwn, rbac.Owner(&id)); err != nil {
			return nil, orm.Pagination{}, err
		}
		owner = &id
	}

	orders, p, err := s.orders.Paginate(ctx, owner, page)
	if err != nil {
		return nil, orm.Pagination{}, persistence("order.list", err)
	}
	return orders, p, nil
}

// Get returns one order if actor may see it.
func (s *OrderService) Get(ctx context.Context, actor *rbac.Actor, id uint) (*models.Order, error) {
	if actor == nil {
		return nil, rbac.ErrAuthenticationRequired
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.Decide(actor, rbac.ActionOrderReadAny, rbac.Resource{}).Allowed {
		if err := authorize(ctx, s.policy, actor, rbac.ActionOrderReadOwn, rbac.Owner(order.UserID)); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (s *OrderService) load(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, notFound("Order", id)
	}
	if err != nil {
		return nil, persistence("order.load", err)
	}
	return &order, nil
}
