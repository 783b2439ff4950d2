package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"zwmart/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Tax is always added on top of the order's tax-exclusive total: two equal
// halves at this rate, one per tax authority, 18% combined.
const HalfTaxRate = 0.09

var ErrNoItems = errors.New("invoice: order has no items")

// Totals is the tax breakdown printed on the invoice.
type Totals struct {
	Subtotal   float64
	CGST       float64
	SGST       float64
	GrandTotal float64
}

// ComputeTotals derives the invoice figures from the order's line items.
func ComputeTotals(items []models.OrderItem) Totals {
	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	cgst := subtotal * HalfTaxRate
	sgst := subtotal * HalfTaxRate
	return Totals{
		Subtotal:   subtotal,
		CGST:       cgst,
		SGST:       sgst,
		GrandTotal: subtotal + cgst + sgst,
	}
}

// Build renders the invoice PDF for one order. It is a pure transformation
// of the order into document bytes: no network calls, no writes. Callers
// own the save/emit side effect.
func Build(order models.Order) ([]byte, error) {
	if len(order.Items) == 0 {
		return nil, ErrNoItems
	}

	totals := ComputeTotals(order.Items)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(34, 119, 85)
	pdf.Rect(0, 0, 210, 26, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetXY(15, 8)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "L", false, 0, "")

	// Company identity block
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(15, 32)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 6, "Zero Waste Mart", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(90, 4.5,
		"Plot 12, Green Logistics Park\nBengaluru 560064, India\nsupport@zerowastemart.example",
		"", "L", false)

	// Invoice metadata, right-aligned
	pdf.SetXY(120, 32)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(75, 4.5, fmt.Sprintf(
		"Invoice No: INV-%s\nOrder No: %s\nDate: %s",
		order.OrderID,
		order.OrderID,
		order.CreatedAt.Format("02 Jan 2006"),
	), "", "R", false)

	// Customer / shipping block
	pdf.SetXY(15, 58)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 5, "Bill To / Ship To", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(110, 4.5, fmt.Sprintf("Customer: %s\n%s", order.BuyerID, order.ShippingAddress), "", "L", false)

	// Line item table
	tableTop := 82.0
	pdf.SetXY(15, tableTop)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 240, 235)
	pdf.CellFormat(85, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, it := range order.Items {
		pdf.SetX(15)
		pdf.CellFormat(85, 6.5, it.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6.5, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6.5, fmt.Sprintf("%.2f", it.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6.5, fmt.Sprintf("%.2f", it.Price*float64(it.Quantity)), "1", 1, "R", false, 0, "")
	}

	// Totals block
	pdf.Ln(3)
	writeTotal := func(label string, amount float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 9)
		pdf.SetX(105)
		pdf.CellFormat(50, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", amount), "", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", totals.Subtotal, false)
	writeTotal("CGST (9%)", totals.CGST, false)
	writeTotal("SGST (9%)", totals.SGST, false)
	writeTotal("Grand Total", totals.GrandTotal, true)

	// Regulatory information box
	pdf.Ln(4)
	pdf.SetX(15)
	pdf.SetFont("Arial", "", 8)
	pdf.MultiCell(120, 4,
		"GSTIN: 29ZWMPL1234F1Z5\nCIN: U74999KA2024PTC012345\nFSSAI Lic. No: 11224333000123",
		"1", "L", false)

	// Certification stamp: QR encoding the order identity and grand total,
	// scanned to verify the invoice against the stored order.
	qrData := fmt.Sprintf("zwm:invoice:%s:%.2f:%d", order.OrderID, totals.GrandTotal, order.CreatedAt.Unix())
	qrPNG, err := qrcode.Encode(qrData, qrcode.Medium, 128)
	if err != nil {
		return nil, err
	}
	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("stamp", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("stamp", 160, 215, 30, 30, false, imgOpts, 0, "")
	pdf.SetXY(160, 246)
	pdf.SetFont("Arial", "I", 7)
	pdf.CellFormat(30, 4, "Certified copy", "", 1, "C", false, 0, "")

	// Footer
	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, "This is a computer-generated invoice and does not require a signature.", "T", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s - Zero Waste Mart", time.Now().Format("02 Jan 2006 15:04")), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
