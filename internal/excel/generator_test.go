package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dkenzh/buildops/internal/model"
)

func TestGenerateWorkbook(t *testing.T) {
	projectID := uuid.New()
	export := model.FinanceExport{
		GeneratedAt: time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC),
		Summary: model.FinancialSummary{
			TotalRevenue:  1500,
			TotalExpenses: 400,
			Profit:        1100,
		},
		Categories: []model.CategoryExpense{
			{Category: "materials", Total: 300},
			{Category: "labor", Total: 100},
		},
		Transactions: []model.Transaction{
			{
				Type:      model.TransactionExpense,
				Amount:    300,
				Category:  "materials",
				ProjectID: projectID,
				Date:      time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		ProjectNames: map[uuid.UUID]string{projectID: "Warehouse Build"},
	}

	raw, err := NewGenerator().Generate(export)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	file, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer file.Close()

	assert.ElementsMatch(t, []string{"Summary", "Categories", "Transactions"}, file.GetSheetList())

	project, err := file.GetCellValue("Transactions", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Warehouse Build", project)

	category, err := file.GetCellValue("Categories", "A2")
	require.NoError(t, err)
	assert.Equal(t, "materials", category)
}
