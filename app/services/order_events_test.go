package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/restopos/app/events"
	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/event"
)

func record(t *testing.T, names ...event.Name) *[]interface{} {
	t.Helper()
	event.Flush()
	t.Cleanup(event.Flush)

	var got []interface{}
	for _, n := range names {
		event.Listen(n, func(_ context.Context, p interface{}) { got = append(got, p) })
	}
	return &got
}

func TestOrderEvents(t *testing.T) {
	got := record(t, events.OrderPlaced, events.OrderStatusChanged, events.OrderUpdated)
	f := newOrderFixture(t, true)
	ctx := context.Background()

	o := f.place(t, f.user)
	_, err := f.svc.MarkAsPaid(ctx, f.cashier, o.ID)
	require.NoError(t, err)
	table := "T2"
	_, err = f.svc.Update(ctx, f.admin, o.ID, services.OrderPatch{TableNumber: &table, ClearUser: true})
	require.NoError(t, err)

	require.Len(t, *got, 3)

	placed := (*got)[0].(events.OrderPlacedPayload)
	assert.Equal(t, o.ID, placed.OrderID)
	require.NotNil(t, placed.OwnerID)
	assert.Equal(t, f.user.ID, *placed.OwnerID)
	assert.Equal(t, "15.00", placed.Total.StringFixed(2))

	changed := (*got)[1].(events.OrderStatusChangedPayload)
	assert.Equal(t, f.cashier.ID, changed.ActorID)

	updated := (*got)[2].(events.OrderUpdatedPayload)
	assert.Equal(t, []string{"table_number", "user_id"}, updated.Fields)
}

func TestRejectedTransitionFiresNothing(t *testing.T) {
	f := newOrderFixture(t, true)
	o := f.place(t, f.user)

	got := record(t, events.OrderStatusChanged)
	_, err := f.svc.MarkAsCompleted(context.Background(), f.cashier, o.ID)
	require.Error(t, err)
	assert.Empty(t, *got)
}
