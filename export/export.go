package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"zwmart/models"
)

// ProductColumns is the fixed header for product exports.
var ProductColumns = []string{"productId", "name", "category", "price", "quantity", "sellerId", "expiryDate", "createdAt"}

// OrderColumns is the fixed header for order exports.
var OrderColumns = []string{"orderId", "buyerId", "sellerId", "status", "paymentStatus", "totalAmount", "items", "createdAt"}

// ProductsCSV serializes the catalog to RFC 4180 CSV. Fields containing the
// delimiter or quotes are quoted by the writer, so exports round-trip. An
// empty input still yields the header row.
func ProductsCSV(items []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ProductColumns); err != nil {
		return nil, err
	}
	for _, p := range items {
		expiry := ""
		if p.ExpiryDate != nil {
			expiry = p.ExpiryDate.Format(time.RFC3339)
		}
		record := []string{
			p.ProductID,
			p.Name,
			p.Category,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%d", p.Quantity),
			p.SellerID,
			expiry,
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OrdersCSV serializes orders one row each, with line items flattened into a
// "name x qty @ price; ..." summary column.
func OrdersCSV(list []models.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(OrderColumns); err != nil {
		return nil, err
	}
	for _, o := range list {
		record := []string{
			o.OrderID,
			o.BuyerID,
			o.SellerID,
			string(o.Status),
			string(o.PaymentStatus),
			fmt.Sprintf("%.2f", o.TotalAmount),
			summarizeItems(o.Items),
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summarizeItems(items []models.OrderItem) string {
	var buf bytes.Buffer
	for i, it := range items {
		if i > 0 {
			buf.WriteString("; ")
		}
		fmt.Fprintf(&buf, "%s x%d @ %.2f", it.Name, it.Quantity, it.Price)
	}
	return buf.String()
}
