package checkout

import (
	"errors"
	"sort"
	"time"

	"zwmart/models"
	"zwmart/orders"
	"zwmart/utils"
)

// DeliveryFee is the flat per-checkout delivery charge.
const DeliveryFee = 40.0

var ErrEmptyCart = errors.New("cart is empty")

// BuildSession summarizes a cart before order placement. An empty cart is
// rejected here, before any order is constructed.
func BuildSession(userID, address string, items []models.CartItem) (models.CheckoutSession, error) {
	if len(items) == 0 {
		return models.CheckoutSession{}, ErrEmptyCart
	}

	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}

	return models.CheckoutSession{
		UserID:      userID,
		Items:       items,
		Address:     address,
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee,
		Total:       subtotal + DeliveryFee,
		CreatedAt:   time.Now(),
	}, nil
}

// OrdersFromCart converts cart contents into one pending order per seller.
// Items with no seller attribution are grouped into a single unattributed
// order. The cart must be non-empty.
func OrdersFromCart(buyerID, address string, items []models.CartItem, now time.Time) ([]models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	bySeller := make(map[string][]models.OrderItem)
	for _, it := range items {
		bySeller[it.SellerID] = append(bySeller[it.SellerID], models.OrderItem{
			ID:        utils.NewID("oit"),
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Image:     it.Image,
		})
	}

	sellers := make([]string, 0, len(bySeller))
	for s := range bySeller {
		sellers = append(sellers, s)
	}
	sort.Strings(sellers) // deterministic order creation

	out := make([]models.Order, 0, len(sellers))
	for _, seller := range sellers {
		order, err := orders.NewOrder(buyerID, seller, address, bySeller[seller], now)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, nil
}
