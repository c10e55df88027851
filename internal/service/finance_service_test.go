package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkenzh/buildops/internal/model"
)

func TestCreateExpensePendingForRegularUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	creator := userPrincipal()
	tx, err := env.finances.Create(ctx, creator, TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(100),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApprovalPending, tx.ApprovalStatus)
	assert.Nil(t, tx.ApprovedByID)
	assert.Equal(t, creator.UserID, tx.CreatedByID)
	assert.Equal(t, model.DefaultCategory, tx.Category)
}

func TestCreateExpenseAutoApprovedForAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	admin := adminPrincipal()
	tx, err := env.finances.Create(ctx, admin, TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(50),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApprovalApproved, tx.ApprovalStatus)
	require.NotNil(t, tx.ApprovedByID)
	assert.Equal(t, admin.UserID, *tx.ApprovedByID)
	assert.NotNil(t, tx.ApprovedAt)
}

func TestCreatePaymentAlwaysApproved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	manager := managerPrincipal()
	for _, txType := range []model.TransactionType{model.TransactionPayment, model.TransactionIncome} {
		tx, err := env.finances.Create(ctx, manager, TransactionInput{
			Type:      txType,
			Amount:    amount(200),
			ProjectID: project.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalApproved, tx.ApprovalStatus)
		require.NotNil(t, tx.ApprovedByID)
		assert.Equal(t, manager.UserID, *tx.ApprovedByID)
	}
}

func TestCreatePaymentRequiresElevatedRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	_, err := env.finances.Create(ctx, userPrincipal(), TransactionInput{
		Type:      model.TransactionPayment,
		Amount:    amount(10),
		ProjectID: project.ID,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateRejectsNegativeAmount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	_, err := env.finances.Create(ctx, userPrincipal(), TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(-5),
		ProjectID: project.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApproveTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	tx, err := env.finances.Create(ctx, userPrincipal(), TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(100),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	firstApprover := managerPrincipal()
	approved, err := env.finances.Approve(ctx, firstApprover, tx.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedByID)
	firstApprovedAt := *approved.ApprovedAt

	_, err = env.finances.Approve(ctx, adminPrincipal(), tx.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// First approval must be untouched by the failed second call.
	reloaded, err := env.finances.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, firstApprover.UserID, *reloaded.ApprovedByID)
	assert.WithinDuration(t, firstApprovedAt, *reloaded.ApprovedAt, time.Second)
}

func TestApproveRequiresElevatedRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	tx, err := env.finances.Create(ctx, userPrincipal(), TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(1),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	_, err = env.finances.Approve(ctx, userPrincipal(), tx.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRejectRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	tx, err := env.finances.Create(ctx, userPrincipal(), TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(1),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	_, err = env.finances.Reject(ctx, managerPrincipal(), tx.ID, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	rejected, err := env.finances.Reject(ctx, managerPrincipal(), tx.ID, "missing receipt")
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, rejected.ApprovalStatus)
	assert.Equal(t, "missing receipt", rejected.RejectionReason)

	_, err = env.finances.Reject(ctx, adminPrincipal(), tx.ID, "again")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateOnlyWhilePendingUnlessAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	creator := userPrincipal()
	tx, err := env.finances.Create(ctx, creator, TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(100),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	// A stranger without elevation cannot touch the record.
	_, err = env.finances.Update(ctx, userPrincipal(), tx.ID, TransactionInput{Description: "sneaky"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// The creator can edit while pending.
	updated, err := env.finances.Update(ctx, creator, tx.ID, TransactionInput{Amount: amount(150)})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Amount)

	_, err = env.finances.Approve(ctx, managerPrincipal(), tx.ID)
	require.NoError(t, err)

	// After approval only an admin may modify.
	_, err = env.finances.Update(ctx, managerPrincipal(), tx.ID, TransactionInput{Amount: amount(200)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err = env.finances.Update(ctx, adminPrincipal(), tx.ID, TransactionInput{Amount: amount(200)})
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.Amount)
}

func TestDeleteTransactionAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	tx, err := env.finances.Create(ctx, userPrincipal(), TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(100),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	err = env.finances.Delete(ctx, managerPrincipal(), tx.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, env.finances.Delete(ctx, adminPrincipal(), tx.ID))

	_, err = env.finances.Get(ctx, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPendingApprovalsOnlyExpenses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	_, err := env.finances.Create(ctx, userPrincipal(), TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(100),
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	_, err = env.finances.Create(ctx, managerPrincipal(), TransactionInput{
		Type:      model.TransactionPayment,
		Amount:    amount(500),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	pending, err := env.finances.PendingApprovals(ctx, managerPrincipal())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, model.TransactionExpense, pending[0].Type)

	_, err = env.finances.PendingApprovals(ctx, userPrincipal())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSummaryCountsOnlyApprovedExpenses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	manager := managerPrincipal()

	_, err := env.finances.Create(ctx, manager, TransactionInput{
		Type:      model.TransactionPayment,
		Amount:    amount(1000),
		ProjectID: project.ID,
		Status:    model.PaymentStatusPaid,
	})
	require.NoError(t, err)
	_, err = env.finances.Create(ctx, manager, TransactionInput{
		Type:      model.TransactionIncome,
		Amount:    amount(500),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	pendingExpense, err := env.finances.Create(ctx, userPrincipal(), TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(100),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	summary, err := env.finances.Summary(ctx, model.TransactionFilter{ProjectID: project.ID})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, summary.TotalRevenue)
	assert.Equal(t, 0.0, summary.TotalExpenses, "pending expense must not count")
	assert.Equal(t, 1500.0, summary.Profit)

	_, err = env.finances.Approve(ctx, manager, pendingExpense.ID)
	require.NoError(t, err)

	summary, err = env.finances.Summary(ctx, model.TransactionFilter{ProjectID: project.ID})
	require.NoError(t, err)
	assert.Equal(t, 100.0, summary.TotalExpenses)
	assert.Equal(t, summary.TotalRevenue-summary.TotalExpenses, summary.Profit)
}

func TestSummaryPendingAndOverduePayments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	manager := managerPrincipal()

	_, err := env.finances.Create(ctx, manager, TransactionInput{
		Type:      model.TransactionPayment,
		Amount:    amount(300),
		ProjectID: project.ID,
		Status:    model.PaymentStatusPending,
	})
	require.NoError(t, err)
	_, err = env.finances.Create(ctx, manager, TransactionInput{
		Type:      model.TransactionPayment,
		Amount:    amount(700),
		ProjectID: project.ID,
		Status:    model.PaymentStatusOverdue,
	})
	require.NoError(t, err)

	summary, err := env.finances.Summary(ctx, model.TransactionFilter{ProjectID: project.ID})
	require.NoError(t, err)
	assert.Equal(t, 300.0, summary.PendingPayments)
	assert.Equal(t, 700.0, summary.OverduePayments)
}

func TestCategoryExpensesSeedsAndBucketsUnknown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	admin := adminPrincipal()

	// Admin expenses auto-approve, so they count immediately.
	_, err := env.finances.Create(ctx, admin, TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(40),
		Category:  "labor",
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	_, err = env.finances.Create(ctx, admin, TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(25),
		Category:  "something-weird",
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	breakdown, err := env.finances.CategoryExpenses(ctx, model.TransactionFilter{ProjectID: project.ID})
	require.NoError(t, err)

	totals := make(map[string]float64, len(breakdown))
	for _, row := range breakdown {
		totals[row.Category] = row.Total
	}
	assert.Equal(t, 40.0, totals["labor"])
	assert.Equal(t, 25.0, totals["other"], "unknown category goes to the other bucket")
	assert.Contains(t, totals, "materials", "known categories are seeded at zero")
	assert.Equal(t, 0.0, totals["materials"])
}

func TestChartDataTwelveMonths(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	admin := adminPrincipal()

	year := 2025
	march := time.Date(year, time.March, 15, 12, 0, 0, 0, time.UTC)
	_, err := env.finances.Create(ctx, admin, TransactionInput{
		Type:      model.TransactionIncome,
		Amount:    amount(900),
		ProjectID: project.ID,
		Date:      march,
	})
	require.NoError(t, err)
	_, err = env.finances.Create(ctx, admin, TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(300),
		ProjectID: project.ID,
		Date:      march,
	})
	require.NoError(t, err)

	points, err := env.finances.ChartData(ctx, year)
	require.NoError(t, err)
	require.Len(t, points, 12)

	assert.Equal(t, "Mar", points[2].Month)
	assert.Equal(t, 900.0, points[2].Income)
	assert.Equal(t, 300.0, points[2].Expenses)
	assert.Equal(t, 0.0, points[0].Income)
	assert.Equal(t, 0.0, points[11].Expenses)
}

func TestGetUnknownTransactionNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.finances.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}
