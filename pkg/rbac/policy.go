package rbac

import (
	"errors"
	"fmt"
)

// Action is an operation subject to authorization.
type Action int

const (
	ActionCatalogRead Action = iota
	ActionCatalogWrite
	ActionOrderCreate
	ActionOrderReadOwn
	ActionOrderReadAny
	ActionOrderMarkPaid
	ActionOrderMarkCompleted
	ActionOrderUpdate
	ActionCashierManage
	ActionCashierDelete
)

var actionNames = map[Action]string{
	ActionCatalogRead:        "catalog.read",
	ActionCatalogWrite:       "catalog.write",
	ActionOrderCreate:        "order.create",
	ActionOrderReadOwn:       "order.read_own",
	ActionOrderReadAny:       "order.read_any",
	ActionOrderMarkPaid:      "order.mark_paid",
	ActionOrderMarkCompleted: "order.mark_completed",
	ActionOrderUpdate:        "order.update",
	ActionCashierManage:      "cashier.manage",
	ActionCashierDelete:      "cashier.delete",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Resource describes the target of an action.
type Resource struct {
	// OwnerID is the order's owning user; nil for guest orders.
	OwnerID *uint
	// TargetUserID is the account being managed.
	TargetUserID uint
}

// Owner is a convenience constructor for order resources.
func Owner(id *uint) Resource { return Resource{OwnerID: id} }

// ErrAuthenticationRequired is returned when an action needs an actor and
// none is present.
var ErrAuthenticationRequired = errors.New("authentication required")

// DeniedError carries the human-readable reason for a denial.
type DeniedError struct {
	Action Action
	Reason string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s denied: %s", e.Action, e.Reason)
}

// Decision is the outcome of Policy.Decide.
type Decision struct {
	Allowed bool
	Action  Action
	Reason  string
	// Unauthenticated is set when the denial would flip with a valid actor.
	Unauthenticated bool
}

// Err converts a denial into ErrAuthenticationRequired or *DeniedError.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Unauthenticated:
		return ErrAuthenticationRequired
	default:
		return &DeniedError{Action: d.Action, Reason: d.Reason}
	}
}

// Policy decides (actor, action, resource) triples. It has no side effects.
type Policy struct {
	// GuestOrders lets callers without roles place orders.
	GuestOrders bool
}

func allow(a Action) Decision { return Decision{Allowed: true, Action: a} }

func deny(a Action, reason string) Decision {
	return Decision{Action: a, Reason: reason}
}

// Decide evaluates action for actor. A nil actor, or one holding no roles,
// gets guest permissions only.
func (p Policy) Decide(actor *Actor, action Action, res Resource) Decision {
	if action == ActionCashierDelete && actor != nil && res.TargetUserID == actor.ID {
		return deny(action, "Cannot delete yourself")
	}

	if actor == nil || actor.Roles.IsEmpty() {
		if p.guestAllows(actor, action, res) {
			return allow(action)
		}
		if actor == nil {
			return Decision{Action: action, Reason: "Authentication required", Unauthenticated: true}
		}
		return deny(action, reasonFor(action))
	}

	for _, role := range actor.Roles.Roles() {
		if roleAllows(role, actor, action, res) {
			return allow(action)
		}
	}
	return deny(action, reasonFor(action))
}

func roleAllows(role Role, actor *Actor, action Action, res Resource) bool {
	switch role {
	case RoleAdmin:
		switch action {
		case ActionOrderMarkPaid, ActionOrderMarkCompleted:
			return false
		default:
			return true
		}
	case RoleCashier:
		switch action {
		case ActionCatalogRead, ActionOrderReadAny, ActionOrderMarkPaid, ActionOrderMarkCompleted:
			return true
		case ActionOrderCreate, ActionOrderReadOwn:
			return ownedBy(res, actor)
		}
	case RoleUser:
		switch action {
		case ActionCatalogRead:
			return true
		case ActionOrderCreate, ActionOrderReadOwn:
			return ownedBy(res, actor)
		}
	}
	return false
}

func (p Policy) guestAllows(actor *Actor, action Action, res Resource) bool {
	switch action {
	case ActionCatalogRead:
		return true
	case ActionOrderCreate:
		if !p.GuestOrders {
			return false
		}
		return res.OwnerID == nil || ownedBy(res, actor)
	case ActionOrderReadOwn:
		return ownedBy(res, actor)
	}
	return false
}

func ownedBy(res Resource, actor *Actor) bool {
	return actor != nil && res.OwnerID != nil && *res.OwnerID == actor.ID
}

func reasonFor(action Action) string {
	switch action {
	case ActionCatalogWrite, ActionOrderUpdate, ActionCashierManage, ActionCashierDelete:
		return "Admin access required"
	case ActionOrderMarkPaid, ActionOrderMarkCompleted:
		return "Only cashiers can change order status"
	case ActionOrderCreate:
		return "You can only place orders for yourself"
	case ActionOrderReadOwn, ActionOrderReadAny:
		return "You can only view your own orders"
	default:
		return "Insufficient permissions"
	}
}
