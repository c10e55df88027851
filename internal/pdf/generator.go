package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/dkenzh/buildops/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Arial"}
}

// Generate renders the financial summary and category breakdown as a
// one-page document.
func (g *Generator) Generate(export model.FinanceExport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Financial Summary", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", export.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	if !export.Filter.DateFrom.IsZero() || !export.Filter.DateTo.IsZero() {
		pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", formatDate(export.Filter.DateFrom), formatDate(export.Filter.DateTo)), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Totals", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	writeAmountLine(pdf, "Total revenue", export.Summary.TotalRevenue)
	writeAmountLine(pdf, "Total expenses (approved)", export.Summary.TotalExpenses)
	writeAmountLine(pdf, "Profit", export.Summary.Profit)
	writeAmountLine(pdf, "Pending payments", export.Summary.PendingPayments)
	writeAmountLine(pdf, "Overdue payments", export.Summary.OverduePayments)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Expenses by category", "", 1, "L", false, 0, "")

	pdf.SetFont(g.fontName, "B", 10)
	pdf.CellFormat(90, 7, "Category", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	for _, row := range export.Categories {
		pdf.CellFormat(90, 7, row.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, formatAmount(row.Total), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAmountLine(pdf *gofpdf.Fpdf, label string, amount float64) {
	pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", label, formatAmount(amount)), "", 1, "L", false, 0, "")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "..."
	}
	return t.Format("2006-01-02")
}
