package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dkenzh/buildops/internal/model"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.WithContext(ctx).First(&resource, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *ResourceRepository) List(ctx context.Context, activeOnly bool) ([]model.Resource, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var resources []model.Resource
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *ResourceRepository) Update(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *ResourceRepository) CreateAllocation(ctx context.Context, allocation *model.Allocation) error {
	return r.db.WithContext(ctx).Create(allocation).Error
}

func (r *ResourceRepository) GetAllocation(ctx context.Context, id uuid.UUID) (*model.Allocation, error) {
	var allocation model.Allocation
	err := r.db.WithContext(ctx).
		Preload("Resource").Preload("Project").
		First(&allocation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

// FindActiveAllocation is the exclusivity pre-check. The partial unique
// index on (resource_id) WHERE is_active remains the authoritative
// guard against two concurrent callers both passing this check.
func (r *ResourceRepository) FindActiveAllocation(ctx context.Context, resourceID uuid.UUID) (*model.Allocation, error) {
	var allocation model.Allocation
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND is_active = ?", resourceID, true).
		First(&allocation).Error
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *ResourceRepository) ListAllocationsByProject(ctx context.Context, projectID uuid.UUID) ([]model.Allocation, error) {
	var allocations []model.Allocation
	err := r.db.WithContext(ctx).
		Preload("Resource").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&allocations).Error
	if err != nil {
		return nil, err
	}
	return allocations, nil
}

func (r *ResourceRepository) CountAllocationsByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Allocation{}).
		Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

func (r *ResourceRepository) UpdateAllocation(ctx context.Context, allocation *model.Allocation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(allocation).Error
}

// DeactivateAllocations flips every active allocation of a resource to
// inactive; used when a resource is soft-deleted.
func (r *ResourceRepository) DeactivateAllocations(ctx context.Context, resourceID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Allocation{}).
		Where("resource_id = ? AND is_active = ?", resourceID, true).
		Update("is_active", false).Error
}
