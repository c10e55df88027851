package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dkenzh/buildops/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the finance export as a workbook with a summary
// sheet, a category sheet and a transaction list.
func (g *Generator) Generate(export model.FinanceExport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, export); err != nil {
		return nil, err
	}

	categorySheet := "Categories"
	file.NewSheet(categorySheet)
	if err := g.writeCategories(file, categorySheet, export); err != nil {
		return nil, err
	}

	transactionSheet := "Transactions"
	file.NewSheet(transactionSheet)
	if err := g.writeTransactions(file, transactionSheet, export); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, export model.FinanceExport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Generated at")
	set("B1", export.GeneratedAt.Format("2006-01-02 15:04"))
	set("A2", "Total revenue")
	set("B2", export.Summary.TotalRevenue)
	set("A3", "Total expenses (approved)")
	set("B3", export.Summary.TotalExpenses)
	set("A4", "Profit")
	set("B4", export.Summary.Profit)
	set("A5", "Pending payments")
	set("B5", export.Summary.PendingPayments)
	set("A6", "Overdue payments")
	set("B6", export.Summary.OverduePayments)
	set("A7", "Transactions")
	set("B7", len(export.Transactions))

	_ = file.SetColWidth(sheet, "A", "A", 30)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	return nil
}

func (g *Generator) writeCategories(file *excelize.File, sheet string, export model.FinanceExport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Category")
	set("B1", "Approved expenses")
	for i, row := range export.Categories {
		set(fmt.Sprintf("A%d", i+2), row.Category)
		set(fmt.Sprintf("B%d", i+2), row.Total)
	}

	_ = file.SetColWidth(sheet, "A", "A", 25)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	return nil
}

func (g *Generator) writeTransactions(file *excelize.File, sheet string, export model.FinanceExport) error {
	headers := []string{"Date", "Type", "Project", "Category", "Description", "Amount", "Status", "Approval"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = file.SetCellValue(sheet, cell, header)
	}

	for rowIdx, tx := range export.Transactions {
		values := []interface{}{
			formatDate(tx.Date),
			string(tx.Type),
			export.ProjectNames[tx.ProjectID],
			tx.Category,
			tx.Description,
			tx.Amount,
			string(tx.Status),
			string(tx.ApprovalStatus),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			_ = file.SetCellValue(sheet, cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "C", "E", 30)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
