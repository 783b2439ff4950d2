package orders

import (
	"fmt"
	"time"

	"zwmart/models"
)

// TransitionError reports an illegal status change. The order is left
// untouched when one is returned.
type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal order status transition %q -> %q", e.From, e.To)
}

// validNext encodes the fulfillment pipeline: forward along the main
// sequence only, with cancellation reachable from any non-terminal state.
// Delivered and cancelled are terminal.
var validNext = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.OrderPending:        {models.OrderProcessing: true, models.OrderCancelled: true},
	models.OrderProcessing:     {models.OrderShipped: true, models.OrderCancelled: true},
	models.OrderShipped:        {models.OrderOutForDelivery: true, models.OrderCancelled: true},
	models.OrderOutForDelivery: {models.OrderDelivered: true, models.OrderCancelled: true},
	models.OrderDelivered:      {},
	models.OrderCancelled:      {},
}

func CanTransition(from, to models.OrderStatus) bool {
	return validNext[from][to]
}

// Transition moves the order to the target status, refreshing UpdatedAt.
// Illegal (from, to) pairs are rejected with a *TransitionError and the
// order is not mutated.
func Transition(o *models.Order, to models.OrderStatus, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return &TransitionError{From: o.Status, To: to}
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

var validPayment = map[models.PaymentStatus]bool{
	models.PaymentPending:  true,
	models.PaymentPaid:     true,
	models.PaymentFailed:   true,
	models.PaymentRefunded: true,
}

// SetPaymentStatus tracks payment independently of fulfillment; any member
// of the closed set is accepted, and UpdatedAt advances.
func SetPaymentStatus(o *models.Order, to models.PaymentStatus, now time.Time) error {
	if !validPayment[to] {
		return fmt.Errorf("unknown payment status %q", to)
	}
	o.PaymentStatus = to
	o.UpdatedAt = now
	return nil
}
