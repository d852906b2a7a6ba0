package infra

// pdf.go renders documents with go-pdf/fpdf:
//   - sale receipts, thermal-paper sized
//   - purchase orders attached to the supplier email

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"autoparts/internal/model"
)

// StoreName is printed on every document header.
const StoreName = "AutoParts"

// WriteReceiptPDF renders a receipt for sale into w.
func WriteReceiptPDF(w io.Writer, sale *model.SaleDetail) error {
	// 80mm wide roll; height grows with the item count.
	height := 70 + float64(len(sale.Items))*5
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, sale.ShopName, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Sale "+sale.ID, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("01/02/2006  15:04"), "", 1, "L", false, 0, "")
	if sale.CustomerName != nil && *sale.CustomerName != "" {
		pdf.CellFormat(contentW, 4, "Customer: "+*sale.CustomerName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		pdf.CellFormat(col1, 5, truncate(item.ProductName, 26), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+sale.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Paid by "+sale.PaymentMethod, "", 1, "L", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for your business!", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

// WritePurchaseOrderPDF renders the purchase order sent to a supplier.
func WritePurchaseOrderPDF(w io.Writer, order *model.ReorderDetail) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, StoreName+" Purchase Order", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Order "+order.ID, "", 1, "L", false, 0, "")
	if order.OrderedDate != nil {
		pdf.CellFormat(0, 6, "Ordered: "+order.OrderedDate.Format("Jan 2, 2006"), "", 1, "L", false, 0, "")
	}
	if order.ExpectedDate != nil {
		pdf.CellFormat(0, 6, "Expected: "+order.ExpectedDate.Format("Jan 2, 2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Supplier: "+order.SupplierName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Ship to: "+order.ShopName, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(40, 7, "SKU", "1", 0, "L", false, 0, "")
	pdf.CellFormat(110, 7, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Quantity", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(40, 7, order.ProductSKU, "1", 0, "L", false, 0, "")
	pdf.CellFormat(110, 7, truncate(order.ProductName, 60), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%d", order.Quantity), "1", 1, "R", false, 0, "")

	if order.Notes != nil && *order.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 5, "Notes: "+*order.Notes, "", "L", false)
	}

	return pdf.Output(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "..."
}
