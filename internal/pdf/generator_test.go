package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkenzh/buildops/internal/model"
)

func TestGenerateDocument(t *testing.T) {
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
	}

	raw, err := NewGenerator().Generate(export)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
