package models

import "time"

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderProcessing     OrderStatus = "processing"
	OrderShipped        OrderStatus = "shipped"
	OrderOutForDelivery OrderStatus = "out-for-delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// OrderItem is a single product-quantity-price line inside an order.
type OrderItem struct {
	ID        string  `json:"id" bson:"id"`
	ProductID string  `json:"productId,omitempty" bson:"productId,omitempty"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"` // unit price
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Order is an immutable-at-creation snapshot of a checked-out cart plus
// fulfillment and payment tracking. TotalAmount is always tax-exclusive;
// tax is computed at invoice time, never stored here. Status moves only
// through the orders package state machine.
type Order struct {
	OrderID         string        `json:"orderId" bson:"orderId"`
	BuyerID         string        `json:"buyerId" bson:"buyerId"`
	SellerID        string        `json:"sellerId,omitempty" bson:"sellerId,omitempty"`
	Items           []OrderItem   `json:"items" bson:"items"`
	Status          OrderStatus   `json:"status" bson:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	TotalAmount     float64       `json:"totalAmount" bson:"totalAmount"`
	ShippingAddress string        `json:"shippingAddress" bson:"shippingAddress"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// OrderEvent is published on every committed status change.
type OrderEvent struct {
	OrderID string    `json:"orderId"`
	BuyerID string    `json:"buyerId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
}
