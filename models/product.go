package models

import "time"

// Product is a surplus/near-expiry listing in the catalog.
type Product struct {
	ProductID  string     `json:"productId" bson:"productId"`
	SellerID   string     `json:"sellerId" bson:"sellerId"`
	Name       string     `json:"name" bson:"name"`
	Category   string     `json:"category,omitempty" bson:"category,omitempty"`
	Price      float64    `json:"price" bson:"price"`
	Quantity   int        `json:"quantity" bson:"quantity"` // stock on hand
	Image      string     `json:"image,omitempty" bson:"image,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
}
