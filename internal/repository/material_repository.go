package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dkenzh/buildops/internal/model"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) CreateRequest(ctx context.Context, request *model.MaterialRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *MaterialRepository) GetRequest(ctx context.Context, id uuid.UUID) (*model.MaterialRequest, error) {
	var request model.MaterialRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *MaterialRepository) ListRequests(ctx context.Context, projectID uuid.UUID, status model.MaterialRequestStatus) ([]model.MaterialRequest, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if projectID != uuid.Nil {
		query = query.Where("project_id = ?", projectID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var rows []model.MaterialRequest
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MaterialRepository) UpdateRequest(ctx context.Context, request *model.MaterialRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *MaterialRepository) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MaterialRequest{}, "id = ?", id).Error
}

func (r *MaterialRepository) CreatePurchase(ctx context.Context, purchase *model.MaterialPurchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *MaterialRepository) GetPurchase(ctx context.Context, id uuid.UUID) (*model.MaterialPurchase, error) {
	var purchase model.MaterialPurchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FindPurchaseByTransaction resolves the purchase linked to an expense
// transaction, used when a transaction delete cascades.
func (r *MaterialRepository) FindPurchaseByTransaction(ctx context.Context, transactionID uuid.UUID) (*model.MaterialPurchase, error) {
	var purchase model.MaterialPurchase
	if err := r.db.WithContext(ctx).First(&purchase, "transaction_id = ?", transactionID).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *MaterialRepository) ListPurchases(ctx context.Context, projectID uuid.UUID) ([]model.MaterialPurchase, error) {
	query := r.db.WithContext(ctx).Order("purchase_date DESC")
	if projectID != uuid.Nil {
		query = query.Where("project_id = ?", projectID)
	}
	var rows []model.MaterialPurchase
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MaterialRepository) UpdatePurchase(ctx context.Context, purchase *model.MaterialPurchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

func (r *MaterialRepository) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MaterialPurchase{}, "id = ?", id).Error
}
