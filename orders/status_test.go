package orders

import (
	"errors"
	"testing"
	"time"

	"zwmart/models"
)

var allStatuses = []models.OrderStatus{
	models.OrderPending,
	models.OrderProcessing,
	models.OrderShipped,
	models.OrderOutForDelivery,
	models.OrderDelivered,
	models.OrderCancelled,
}

func legalPairs() map[[2]models.OrderStatus]bool {
	forward := [][2]models.OrderStatus{
		{models.OrderPending, models.OrderProcessing},
		{models.OrderProcessing, models.OrderShipped},
		{models.OrderShipped, models.OrderOutForDelivery},
		{models.OrderOutForDelivery, models.OrderDelivered},
	}
	legal := make(map[[2]models.OrderStatus]bool)
	for _, p := range forward {
		legal[p] = true
	}
	for _, from := range allStatuses {
		if from == models.OrderDelivered || from == models.OrderCancelled {
			continue
		}
		legal[[2]models.OrderStatus{from, models.OrderCancelled}] = true
	}
	return legal
}

func TestTransitionTable(t *testing.T) {
	legal := legalPairs()

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := legal[[2]models.OrderStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestIllegalTransitionLeavesOrderUntouched(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := models.Order{
		OrderID:   "ord-1",
		Status:    models.OrderDelivered,
		UpdatedAt: created,
	}

	err := Transition(&o, models.OrderProcessing, time.Now())
	if err == nil {
		t.Fatal("expected error for delivered -> processing")
	}

	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %T", err)
	}
	if te.From != models.OrderDelivered || te.To != models.OrderProcessing {
		t.Fatalf("error names wrong pair: %v", te)
	}
	if o.Status != models.OrderDelivered {
		t.Fatalf("status mutated on rejected transition: %s", o.Status)
	}
	if !o.UpdatedAt.Equal(created) {
		t.Fatalf("UpdatedAt mutated on rejected transition: %v", o.UpdatedAt)
	}
}

func TestLegalTransitionRefreshesUpdatedAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(2 * time.Hour)
	o := models.Order{Status: models.OrderPending, UpdatedAt: created}

	if err := Transition(&o, models.OrderProcessing, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != models.OrderProcessing {
		t.Fatalf("expected processing, got %s", o.Status)
	}
	if !o.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt not refreshed: %v", o.UpdatedAt)
	}
}

func TestFullDeliveryPath(t *testing.T) {
	o := models.Order{Status: models.OrderPending}
	path := []models.OrderStatus{
		models.OrderProcessing,
		models.OrderShipped,
		models.OrderOutForDelivery,
		models.OrderDelivered,
	}
	for _, next := range path {
		if err := Transition(&o, next, time.Now()); err != nil {
			t.Fatalf("step to %s failed: %v", next, err)
		}
	}
	if err := Transition(&o, models.OrderCancelled, time.Now()); err == nil {
		t.Fatal("delivered order must not be cancellable")
	}
}

func TestSetPaymentStatus(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	o := models.Order{PaymentStatus: models.PaymentPending, UpdatedAt: created}

	if err := SetPaymentStatus(&o, models.PaymentPaid, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.PaymentStatus != models.PaymentPaid || !o.UpdatedAt.Equal(now) {
		t.Fatalf("payment status not applied: %+v", o)
	}

	if err := SetPaymentStatus(&o, "settled", now); err == nil {
		t.Fatal("unknown payment status must be rejected")
	}
}
