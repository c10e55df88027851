package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dkenzh/buildops/internal/model"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	if err := r.db.WithContext(ctx).Preload("Attachments").First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *TransactionRepository) List(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	var rows []model.Transaction
	err := r.filtered(ctx, filter).Order("date DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TransactionRepository) Update(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Transaction{}, "id = ?", id).Error
}

func (r *TransactionRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// ListPendingExpenses is the approvals inbox: only expenses ever sit in
// pending, payments and income auto-approve.
func (r *TransactionRepository) ListPendingExpenses(ctx context.Context) ([]model.Transaction, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Where("type = ? AND approval_status = ?", model.TransactionExpense, model.ApprovalPending).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TransactionRepository) SumRevenue(ctx context.Context, filter model.TransactionFilter) (float64, error) {
	return r.sum(r.filtered(ctx, filter).
		Where("type IN ?", []model.TransactionType{model.TransactionPayment, model.TransactionIncome}))
}

func (r *TransactionRepository) SumApprovedExpenses(ctx context.Context, filter model.TransactionFilter) (float64, error) {
	return r.sum(r.filtered(ctx, filter).
		Where("type = ? AND approval_status = ?", model.TransactionExpense, model.ApprovalApproved))
}

func (r *TransactionRepository) SumPaymentsByStatus(ctx context.Context, filter model.TransactionFilter, status model.PaymentStatus) (float64, error) {
	return r.sum(r.filtered(ctx, filter).
		Where("type = ? AND status = ?", model.TransactionPayment, status))
}

// CategoryTotals returns approved-expense sums grouped by category.
func (r *TransactionRepository) CategoryTotals(ctx context.Context, filter model.TransactionFilter) ([]model.CategoryExpense, error) {
	var rows []model.CategoryExpense
	err := r.filtered(ctx, filter).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("type = ? AND approval_status = ?", model.TransactionExpense, model.ApprovalApproved).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumIncomeInRange and SumApprovedExpensesInRange back the monthly
// chart, which issues one pair of range queries per month.
func (r *TransactionRepository) SumIncomeInRange(ctx context.Context, from, to time.Time) (float64, error) {
	return r.sum(r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("type IN ?", []model.TransactionType{model.TransactionPayment, model.TransactionIncome}).
		Where("date >= ? AND date < ?", from, to))
}

func (r *TransactionRepository) SumApprovedExpensesInRange(ctx context.Context, from, to time.Time) (float64, error) {
	return r.sum(r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("type = ? AND approval_status = ?", model.TransactionExpense, model.ApprovalApproved).
		Where("date >= ? AND date < ?", from, to))
}

func (r *TransactionRepository) filtered(ctx context.Context, filter model.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Transaction{})
	if filter.ProjectID != uuid.Nil {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", filter.ApprovalStatus)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if !filter.DateFrom.IsZero() {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		query = query.Where("date <= ?", filter.DateTo)
	}
	return query
}

func (r *TransactionRepository) sum(query *gorm.DB) (float64, error) {
	var total float64
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
