package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/repository"
)

type FinanceService struct {
	transactions *repository.TransactionRepository
	projects     *repository.ProjectRepository
	categories   *repository.CategoryRepository
	materials    *repository.MaterialRepository
	seedNames    []string
	log          zerolog.Logger
}

func NewFinanceService(
	transactions *repository.TransactionRepository,
	projects *repository.ProjectRepository,
	categories *repository.CategoryRepository,
	materials *repository.MaterialRepository,
	seedCategories []string,
	log zerolog.Logger,
) *FinanceService {
	return &FinanceService{
		transactions: transactions,
		projects:     projects,
		categories:   categories,
		materials:    materials,
		seedNames:    seedCategories,
		log:          log,
	}
}

type TransactionInput struct {
	Type        model.TransactionType
	Amount      *float64
	Description string
	Category    string
	ProjectID   uuid.UUID
	Date        time.Time
	Status      model.PaymentStatus
	Attachments []model.Attachment
}

func (s *FinanceService) Create(ctx context.Context, principal model.Principal, input TransactionInput) (*model.Transaction, error) {
	switch input.Type {
	case model.TransactionExpense:
	case model.TransactionPayment, model.TransactionIncome:
		if !principal.IsElevated() {
			return nil, ErrPermissionDenied
		}
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, input.Type)
	}
	if input.Amount == nil || *input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidInput)
	}
	if input.ProjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: projectId is required", ErrInvalidInput)
	}
	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		return nil, translate(err)
	}
	if input.Status == "" {
		input.Status = model.PaymentStatusPending
	}
	if !validPaymentStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx := &model.Transaction{
		Type:           input.Type,
		Amount:         *input.Amount,
		Description:    input.Description,
		Category:       category,
		ProjectID:      input.ProjectID,
		Date:           date,
		Status:         input.Status,
		ApprovalStatus: model.InitialApprovalStatus(input.Type, principal.Role),
		CreatedByID:    principal.UserID,
		Attachments:    input.Attachments,
	}
	if tx.ApprovalStatus == model.ApprovalApproved {
		now := time.Now()
		approver := principal.UserID
		tx.ApprovedByID = &approver
		tx.ApprovedAt = &now
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *FinanceService) Get(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return tx, nil
}

func (s *FinanceService) List(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	return s.transactions.List(ctx, filter)
}

// Update is allowed while the transaction is still pending approval, or
// by an admin at any time. Only the creator or an elevated caller may
// touch the record at all.
func (s *FinanceService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input TransactionInput) (*model.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if tx.CreatedByID != principal.UserID && !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	if tx.ApprovalStatus != model.ApprovalPending && !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: only pending transactions can be modified", ErrInvalidInput)
	}

	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidInput)
		}
		tx.Amount = *input.Amount
	}
	if input.Description != "" {
		tx.Description = input.Description
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		tx.Category = category
	}
	if input.ProjectID != uuid.Nil && input.ProjectID != tx.ProjectID {
		if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
			return nil, translate(err)
		}
		tx.ProjectID = input.ProjectID
	}
	if !input.Date.IsZero() {
		tx.Date = input.Date
	}
	if input.Status != "" {
		if !validPaymentStatus(input.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
		}
		tx.Status = input.Status
	}
	if input.Attachments != nil {
		tx.Attachments = append(tx.Attachments, input.Attachments...)
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Delete is admin-only and cascades to a linked material purchase when
// one references this transaction.
func (s *FinanceService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if _, err := s.transactions.GetByID(ctx, id); err != nil {
		return translate(err)
	}

	purchase, err := s.materials.FindPurchaseByTransaction(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := s.transactions.Delete(ctx, id); err != nil {
		return err
	}
	if purchase != nil {
		if err := s.materials.DeletePurchase(ctx, purchase.ID); err != nil {
			s.log.Error().Err(err).Str("purchase_id", purchase.ID.String()).Msg("linked purchase delete failed")
		}
	}
	return nil
}

func (s *FinanceService) Approve(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Transaction, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if tx.ApprovalStatus == model.ApprovalApproved {
		return nil, fmt.Errorf("%w: transaction is already approved", ErrConflict)
	}

	now := time.Now()
	approver := principal.UserID
	tx.ApprovalStatus = model.ApprovalApproved
	tx.ApprovedByID = &approver
	tx.ApprovedAt = &now
	tx.RejectedByID = nil
	tx.RejectedAt = nil
	tx.RejectionReason = ""
	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *FinanceService) Reject(ctx context.Context, principal model.Principal, id uuid.UUID, reason string) (*model.Transaction, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if tx.ApprovalStatus == model.ApprovalRejected {
		return nil, fmt.Errorf("%w: transaction is already rejected", ErrConflict)
	}

	now := time.Now()
	rejector := principal.UserID
	tx.ApprovalStatus = model.ApprovalRejected
	tx.RejectedByID = &rejector
	tx.RejectedAt = &now
	tx.RejectionReason = reason
	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *FinanceService) PendingApprovals(ctx context.Context, principal model.Principal) ([]model.Transaction, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	return s.transactions.ListPendingExpenses(ctx)
}

func (s *FinanceService) Summary(ctx context.Context, filter model.TransactionFilter) (*model.FinancialSummary, error) {
	revenue, err := s.transactions.SumRevenue(ctx, filter)
	if err != nil {
		return nil, err
	}
	expenses, err := s.transactions.SumApprovedExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}
	pending, err := s.transactions.SumPaymentsByStatus(ctx, filter, model.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	overdue, err := s.transactions.SumPaymentsByStatus(ctx, filter, model.PaymentStatusOverdue)
	if err != nil {
		return nil, err
	}
	return &model.FinancialSummary{
		TotalRevenue:    revenue,
		TotalExpenses:   expenses,
		Profit:          revenue - expenses,
		PendingPayments: pending,
		OverduePayments: overdue,
	}, nil
}

// CategoryExpenses seeds every known category at zero, then folds the
// approved-expense totals on top. Unrecognized categories land in the
// "other" bucket.
func (s *FinanceService) CategoryExpenses(ctx context.Context, filter model.TransactionFilter) ([]model.CategoryExpense, error) {
	known := make(map[string]float64, len(s.seedNames)+1)
	order := make([]string, 0, len(s.seedNames)+1)
	addKnown := func(name string) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return
		}
		if _, ok := known[name]; !ok {
			known[name] = 0
			order = append(order, name)
		}
	}
	for _, name := range s.seedNames {
		addKnown(name)
	}
	stored, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range stored {
		addKnown(category.Name)
	}
	addKnown(model.DefaultCategory)

	totals, err := s.transactions.CategoryTotals(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, row := range totals {
		name := strings.ToLower(strings.TrimSpace(row.Category))
		if _, ok := known[name]; !ok {
			name = model.DefaultCategory
		}
		known[name] += row.Total
	}

	result := make([]model.CategoryExpense, 0, len(order))
	for _, name := range order {
		result = append(result, model.CategoryExpense{Category: name, Total: known[name]})
	}
	return result, nil
}

// ChartData issues one income and one approved-expense range query per
// month of the requested year, twelve pairs in total.
func (s *FinanceService) ChartData(ctx context.Context, year int) ([]model.MonthlyPoint, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	points := make([]model.MonthlyPoint, 0, 12)
	for month := time.January; month <= time.December; month++ {
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		income, err := s.transactions.SumIncomeInRange(ctx, from, to)
		if err != nil {
			return nil, err
		}
		expenses, err := s.transactions.SumApprovedExpensesInRange(ctx, from, to)
		if err != nil {
			return nil, err
		}
		points = append(points, model.MonthlyPoint{
			Month:    from.Format("Jan"),
			Income:   income,
			Expenses: expenses,
		})
	}
	return points, nil
}

// BuildExport assembles everything the spreadsheet and PDF generators
// need for the current filter.
func (s *FinanceService) BuildExport(ctx context.Context, filter model.TransactionFilter) (*model.FinanceExport, error) {
	transactions, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary, err := s.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.CategoryExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}

	projectIDs := make([]uuid.UUID, 0, len(transactions))
	seen := make(map[uuid.UUID]struct{}, len(transactions))
	for _, tx := range transactions {
		if _, ok := seen[tx.ProjectID]; !ok {
			seen[tx.ProjectID] = struct{}{}
			projectIDs = append(projectIDs, tx.ProjectID)
		}
	}
	names, err := s.projects.NameIndex(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})
	return &model.FinanceExport{
		GeneratedAt:  time.Now(),
		Filter:       filter,
		Summary:      *summary,
		Categories:   categories,
		Transactions: transactions,
		ProjectNames: names,
	}, nil
}

func validPaymentStatus(status model.PaymentStatus) bool {
	switch status {
	case model.PaymentStatusPaid, model.PaymentStatusPending, model.PaymentStatusOverdue:
		return true
	}
	return false
}
