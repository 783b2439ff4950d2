package models

import "time"

// CartItem is a denormalized snapshot of a product taken at add-time.
// Name and price are frozen when the item enters the cart, so later catalog
// edits never retroactively change a cart in progress.
type CartItem struct {
	ID         string     `json:"id" bson:"id"`
	ProductID  string     `json:"productId" bson:"productId"`
	UserID     string     `json:"userId,omitempty" bson:"userId,omitempty"`
	Name       string     `json:"name" bson:"name"`
	Price      float64    `json:"price" bson:"price"` // unit price
	Image      string     `json:"image,omitempty" bson:"image,omitempty"`
	Quantity   int        `json:"quantity" bson:"quantity"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	SellerID   string     `json:"sellerId,omitempty" bson:"sellerId,omitempty"`
	AddedAt    time.Time  `json:"addedAt" bson:"addedAt"`
}

// CheckoutSession is the pre-order summary shown before an order is placed.
type CheckoutSession struct {
	UserID      string     `json:"userId" bson:"userId"`
	Items       []CartItem `json:"items" bson:"items"`
	Address     string     `json:"address" bson:"address"`
	Subtotal    float64    `json:"subtotal" bson:"subtotal"`
	DeliveryFee float64    `json:"deliveryFee" bson:"deliveryFee"`
	Total       float64    `json:"total" bson:"total"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
}
