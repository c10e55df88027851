package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/repository"
)

type MaterialService struct {
	materials    *repository.MaterialRepository
	projects     *repository.ProjectRepository
	transactions *repository.TransactionRepository
	log          zerolog.Logger
}

func NewMaterialService(
	materials *repository.MaterialRepository,
	projects *repository.ProjectRepository,
	transactions *repository.TransactionRepository,
	log zerolog.Logger,
) *MaterialService {
	return &MaterialService{
		materials:    materials,
		projects:     projects,
		transactions: transactions,
		log:          log,
	}
}

type MaterialRequestInput struct {
	ProjectID uuid.UUID
	ItemName  string
	Quantity  float64
	Unit      string
	Urgency   model.MaterialUrgency
	Notes     string
}

func (s *MaterialService) CreateRequest(ctx context.Context, principal model.Principal, input MaterialRequestInput) (*model.MaterialRequest, error) {
	input.ItemName = strings.TrimSpace(input.ItemName)
	if input.ItemName == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if input.ProjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: projectId is required", ErrInvalidInput)
	}
	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		return nil, translate(err)
	}
	if input.Urgency == "" {
		input.Urgency = model.MaterialUrgencyMedium
	}
	switch input.Urgency {
	case model.MaterialUrgencyLow, model.MaterialUrgencyMedium, model.MaterialUrgencyHigh:
	default:
		return nil, fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, input.Urgency)
	}

	request := &model.MaterialRequest{
		ProjectID:     input.ProjectID,
		ItemName:      input.ItemName,
		Quantity:      input.Quantity,
		Unit:          input.Unit,
		Urgency:       input.Urgency,
		Status:        model.MaterialRequestPending,
		Notes:         input.Notes,
		RequestedByID: principal.UserID,
	}
	if err := s.materials.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *MaterialService) ListRequests(ctx context.Context, projectID uuid.UUID, status model.MaterialRequestStatus) ([]model.MaterialRequest, error) {
	return s.materials.ListRequests(ctx, projectID, status)
}

func (s *MaterialService) ApproveRequest(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.MaterialRequest, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	request, err := s.materials.GetRequest(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if request.Status != model.MaterialRequestPending {
		return nil, fmt.Errorf("%w: request is already %s", ErrConflict, request.Status)
	}
	now := time.Now()
	reviewer := principal.UserID
	request.Status = model.MaterialRequestApproved
	request.ReviewedByID = &reviewer
	request.ReviewedAt = &now
	if err := s.materials.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *MaterialService) RejectRequest(ctx context.Context, principal model.Principal, id uuid.UUID, reason string) (*model.MaterialRequest, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}
	request, err := s.materials.GetRequest(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if request.Status != model.MaterialRequestPending {
		return nil, fmt.Errorf("%w: request is already %s", ErrConflict, request.Status)
	}
	now := time.Now()
	reviewer := principal.UserID
	request.Status = model.MaterialRequestRejected
	request.RejectionReason = reason
	request.ReviewedByID = &reviewer
	request.ReviewedAt = &now
	if err := s.materials.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *MaterialService) DeleteRequest(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if _, err := s.materials.GetRequest(ctx, id); err != nil {
		return translate(err)
	}
	return s.materials.DeleteRequest(ctx, id)
}

type MaterialPurchaseInput struct {
	RequestID    *uuid.UUID
	ProjectID    uuid.UUID
	ItemName     string
	Quantity     float64
	Unit         string
	UnitPrice    float64
	Supplier     string
	PurchaseDate time.Time
}

// CreatePurchase is a two-phase write: the purchase row first, then the
// linked expense transaction. If the transaction write fails the
// purchase is deleted again so the two collections stay consistent.
func (s *MaterialService) CreatePurchase(ctx context.Context, principal model.Principal, input MaterialPurchaseInput) (*model.MaterialPurchase, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	input.ItemName = strings.TrimSpace(input.ItemName)
	if input.ItemName == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if input.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price cannot be negative", ErrInvalidInput)
	}
	if input.ProjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: projectId is required", ErrInvalidInput)
	}
	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		return nil, translate(err)
	}

	var request *model.MaterialRequest
	if input.RequestID != nil {
		found, err := s.materials.GetRequest(ctx, *input.RequestID)
		if err != nil {
			return nil, translate(err)
		}
		request = found
	}
	if input.PurchaseDate.IsZero() {
		input.PurchaseDate = time.Now()
	}

	purchase := &model.MaterialPurchase{
		RequestID:    input.RequestID,
		ProjectID:    input.ProjectID,
		ItemName:     input.ItemName,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		UnitPrice:    input.UnitPrice,
		TotalAmount:  input.Quantity * input.UnitPrice,
		Supplier:     input.Supplier,
		PurchaseDate: input.PurchaseDate,
		CreatedByID:  principal.UserID,
	}
	if err := s.materials.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	expense := &model.Transaction{
		Type:           model.TransactionExpense,
		Amount:         purchase.TotalAmount,
		Description:    fmt.Sprintf("Material purchase: %s (%.2f %s)", purchase.ItemName, purchase.Quantity, purchase.Unit),
		Category:       model.MaterialCategory,
		ProjectID:      purchase.ProjectID,
		Date:           purchase.PurchaseDate,
		Status:         model.PaymentStatusPaid,
		ApprovalStatus: model.InitialApprovalStatus(model.TransactionExpense, principal.Role),
		CreatedByID:    principal.UserID,
	}
	if expense.ApprovalStatus == model.ApprovalApproved {
		now := time.Now()
		approver := principal.UserID
		expense.ApprovedByID = &approver
		expense.ApprovedAt = &now
	}
	if err := s.transactions.Create(ctx, expense); err != nil {
		// Compensate phase one so no purchase exists without its expense.
		if delErr := s.materials.DeletePurchase(ctx, purchase.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("purchase_id", purchase.ID.String()).Msg("purchase compensation failed")
		}
		return nil, err
	}

	purchase.TransactionID = &expense.ID
	if err := s.materials.UpdatePurchase(ctx, purchase); err != nil {
		return nil, err
	}
	if request != nil && request.Status != model.MaterialRequestPurchased {
		request.Status = model.MaterialRequestPurchased
		if err := s.materials.UpdateRequest(ctx, request); err != nil {
			s.log.Warn().Err(err).Msg("request status sync failed")
		}
	}
	return purchase, nil
}

func (s *MaterialService) ListPurchases(ctx context.Context, projectID uuid.UUID) ([]model.MaterialPurchase, error) {
	return s.materials.ListPurchases(ctx, projectID)
}

// DeletePurchase removes the purchase and its linked expense
// transaction.
func (s *MaterialService) DeletePurchase(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	purchase, err := s.materials.GetPurchase(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := s.materials.DeletePurchase(ctx, id); err != nil {
		return err
	}
	if purchase.TransactionID != nil {
		if err := s.transactions.Delete(ctx, *purchase.TransactionID); err != nil {
			s.log.Error().Err(err).Str("transaction_id", purchase.TransactionID.String()).Msg("linked expense delete failed")
		}
	}
	return nil
}

// ListExpenses returns the material expense transactions.
func (s *MaterialService) ListExpenses(ctx context.Context, projectID uuid.UUID) ([]model.Transaction, error) {
	return s.transactions.List(ctx, model.TransactionFilter{
		ProjectID: projectID,
		Type:      model.TransactionExpense,
		Category:  model.MaterialCategory,
	})
}
