package orders

import (
	"errors"
	"fmt"
	"time"

	"zwmart/models"
	"zwmart/utils"
)

var (
	ErrNoItems        = errors.New("order has no items")
	ErrMissingBuyer   = errors.New("order has no buyer")
	ErrMissingAddress = errors.New("order has no shipping address")
)

// NewOrder builds a pending order from its line items, enforcing the
// construction invariants: items non-empty, quantities positive, prices
// non-negative. TotalAmount is computed here and is always tax-exclusive;
// invoices add tax on top.
func NewOrder(buyerID, sellerID, address string, items []models.OrderItem, now time.Time) (models.Order, error) {
	if buyerID == "" {
		return models.Order{}, ErrMissingBuyer
	}
	if address == "" {
		return models.Order{}, ErrMissingAddress
	}
	if len(items) == 0 {
		return models.Order{}, ErrNoItems
	}

	total := 0.0
	for i, it := range items {
		if it.Quantity < 1 {
			return models.Order{}, fmt.Errorf("line %d (%s): quantity must be >= 1", i, it.Name)
		}
		if it.Price < 0 {
			return models.Order{}, fmt.Errorf("line %d (%s): price must be >= 0", i, it.Name)
		}
		total += it.Price * float64(it.Quantity)
	}

	return models.Order{
		OrderID:         utils.NewID("ord"),
		BuyerID:         buyerID,
		SellerID:        sellerID,
		Items:           items,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		TotalAmount:     total,
		ShippingAddress: address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
