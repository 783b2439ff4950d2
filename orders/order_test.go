package orders

import (
	"testing"
	"time"

	"zwmart/models"
)

func TestNewOrderTotalInvariant(t *testing.T) {
	items := []models.OrderItem{
		{ID: "oit-1", Name: "Bread", Quantity: 2, Price: 25},
		{ID: "oit-2", Name: "Milk", Quantity: 3, Price: 30.5},
	}

	o, err := NewOrder("buyer-1", "seller-1", "12 Lake Rd", items, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 25.0*2 + 30.5*3
	if o.TotalAmount != want {
		t.Fatalf("TotalAmount = %v, want %v", o.TotalAmount, want)
	}
	if o.Status != models.OrderPending || o.PaymentStatus != models.PaymentPending {
		t.Fatalf("fresh order must be pending/pending, got %s/%s", o.Status, o.PaymentStatus)
	}
	if o.OrderID == "" {
		t.Fatal("order must get an identifier")
	}
	if !o.CreatedAt.Equal(o.UpdatedAt) {
		t.Fatal("CreatedAt and UpdatedAt must match at construction")
	}
}

func TestNewOrderValidation(t *testing.T) {
	now := time.Now()
	valid := []models.OrderItem{{ID: "oit-1", Name: "Bread", Quantity: 1, Price: 25}}

	t.Run("empty items", func(t *testing.T) {
		if _, err := NewOrder("buyer-1", "seller-1", "addr", nil, now); err != ErrNoItems {
			t.Fatalf("expected ErrNoItems, got %v", err)
		}
	})

	t.Run("missing buyer", func(t *testing.T) {
		if _, err := NewOrder("", "seller-1", "addr", valid, now); err != ErrMissingBuyer {
			t.Fatalf("expected ErrMissingBuyer, got %v", err)
		}
	})

	t.Run("missing address", func(t *testing.T) {
		if _, err := NewOrder("buyer-1", "seller-1", "", valid, now); err != ErrMissingAddress {
			t.Fatalf("expected ErrMissingAddress, got %v", err)
		}
	})

	t.Run("zero quantity line", func(t *testing.T) {
		bad := []models.OrderItem{{ID: "oit-1", Name: "Bread", Quantity: 0, Price: 25}}
		if _, err := NewOrder("buyer-1", "seller-1", "addr", bad, now); err == nil {
			t.Fatal("expected error for zero-quantity line")
		}
	})

	t.Run("negative price line", func(t *testing.T) {
		bad := []models.OrderItem{{ID: "oit-1", Name: "Bread", Quantity: 1, Price: -5}}
		if _, err := NewOrder("buyer-1", "seller-1", "addr", bad, now); err == nil {
			t.Fatal("expected error for negative-price line")
		}
	})
}
