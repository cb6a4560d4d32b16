package services

import (
	"context"

	"github.com/shashiranjanraj/restopos/pkg/logger"
	"github.com/shashiranjanraj/restopos/pkg/metrics"
	"github.com/shashiranjanraj/restopos/pkg/rbac"
)

// authorize consults policy and counts denials.
func authorize(ctx context.Context, policy rbac.Policy, actor *rbac.Actor, action rbac.Action, res rbac.Resource) error {
	d := policy.Decide(actor, action, res)
	if d.Allowed {
		return nil
	}

	metrics.AuthorizationDenials.WithLabelValues(action.String()).Inc()
	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}
	logger.WithCtx(ctx).Info("authorization denied",
		"action", action.String(), "actor_id", actorID, "reason", d.Reason)
	return d.Err()
}
