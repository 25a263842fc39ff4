package domain

import (
	"testing"

	"github.com/google/uuid"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("bad uuid %q: %v", s, err)
	}
	return id
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusNew, OrderStatusInProgress, true},
		{OrderStatusNew, OrderStatusCancelled, true},
		{OrderStatusNew, OrderStatusDelivered, false},
		{OrderStatusInProgress, OrderStatusDelivered, true},
		{OrderStatusInProgress, OrderStatusCancelled, true},
		{OrderStatusInProgress, OrderStatusNew, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusNew, false},
		{OrderStatusDelivered, OrderStatusInProgress, false},
		{OrderStatusCancelled, OrderStatusNew, false},
		{OrderStatusCancelled, OrderStatusInProgress, false},
		{OrderStatusCancelled, OrderStatusDelivered, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("transition %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestOrderStatusTransitionsAreIdempotent(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusNew, OrderStatusInProgress, OrderStatusDelivered, OrderStatusCancelled} {
		if !s.CanTransitionTo(s) {
			t.Errorf("re-applying %s to itself should be a no-op, got rejected", s)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	if OrderStatus("shipped").Valid() {
		t.Error("unknown status should not be valid")
	}
	if !OrderStatusNew.Valid() {
		t.Error("new should be valid")
	}
}

func TestCartLineID(t *testing.T) {
	p := Product{}
	p.ID = mustUUID(t, "7b8f6f53-3a7e-4f87-9af5-0f2f3be3a111")

	if got := CartLineID(p.ID, ""); got != p.ID.String() {
		t.Errorf("line id without variation: got %q", got)
	}
	if got := CartLineID(p.ID, "256 Go"); got != p.ID.String()+"-256 Go" {
		t.Errorf("line id with variation: got %q", got)
	}
}
