package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/repository"
)

type ResourceService struct {
	resources *repository.ResourceRepository
	projects  *repository.ProjectRepository
	log       zerolog.Logger
}

func NewResourceService(resources *repository.ResourceRepository, projects *repository.ProjectRepository, log zerolog.Logger) *ResourceService {
	return &ResourceService{resources: resources, projects: projects, log: log}
}

type ResourceInput struct {
	Name       string
	Role       string
	Email      string
	Phone      string
	HourlyRate *float64
	Skills     []string
}

func (s *ResourceService) Create(ctx context.Context, principal model.Principal, input ResourceInput) (*model.Resource, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: resource name is required", ErrInvalidInput)
	}
	rate := 0.0
	if input.HourlyRate != nil {
		if *input.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrInvalidInput)
		}
		rate = *input.HourlyRate
	}

	resource := &model.Resource{
		Name:       input.Name,
		Role:       input.Role,
		Email:      input.Email,
		Phone:      input.Phone,
		HourlyRate: rate,
		Skills:     model.StringList(input.Skills),
		IsActive:   true,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) Get(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return resource, nil
}

func (s *ResourceService) List(ctx context.Context, activeOnly bool) ([]model.Resource, error) {
	return s.resources.List(ctx, activeOnly)
}

func (s *ResourceService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input ResourceInput) (*model.Resource, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		resource.Name = name
	}
	if input.Role != "" {
		resource.Role = input.Role
	}
	if input.Email != "" {
		resource.Email = input.Email
	}
	if input.Phone != "" {
		resource.Phone = input.Phone
	}
	if input.HourlyRate != nil {
		if *input.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrInvalidInput)
		}
		resource.HourlyRate = *input.HourlyRate
	}
	if input.Skills != nil {
		resource.Skills = model.StringList(input.Skills)
	}
	if err := s.resources.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Deactivate soft-deletes a resource and deactivates all of its
// allocations.
func (s *ResourceService) Deactivate(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsElevated() {
		return ErrPermissionDenied
	}
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if active, err := s.resources.FindActiveAllocation(ctx, id); err == nil {
		if err := s.projects.UpdateManpower(ctx, active.ProjectID, -1); err != nil {
			s.log.Warn().Err(err).Msg("manpower counter sync failed")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	resource.IsActive = false
	if err := s.resources.Update(ctx, resource); err != nil {
		return err
	}
	return s.resources.DeactivateAllocations(ctx, id)
}

type AllocationInput struct {
	ResourceID     uuid.UUID
	HoursAllocated float64
	StartDate      time.Time
	EndDate        *time.Time
}

// Allocate binds a resource to a project. A resource with an active
// allocation anywhere is rejected; the check is a pre-check only, the
// partial unique index on allocations makes the call safe under
// concurrency.
func (s *ResourceService) Allocate(ctx context.Context, principal model.Principal, projectID uuid.UUID, input AllocationInput) (*model.Allocation, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	if input.ResourceID == uuid.Nil {
		return nil, fmt.Errorf("%w: resourceId is required", ErrInvalidInput)
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, translate(err)
	}
	resource, err := s.resources.GetByID(ctx, input.ResourceID)
	if err != nil {
		return nil, translate(err)
	}
	if !resource.IsActive {
		return nil, fmt.Errorf("%w: resource is not active", ErrInvalidInput)
	}

	existing, err := s.resources.FindActiveAllocation(ctx, input.ResourceID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: resource is already allocated to a project", ErrConflict)
	}

	allocation := &model.Allocation{
		ResourceID:     input.ResourceID,
		ProjectID:      projectID,
		HoursAllocated: input.HoursAllocated,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		IsActive:       true,
	}
	if err := s.resources.CreateAllocation(ctx, allocation); err != nil {
		// The unique index turns the racing second insert into an error
		// here; report it as the same conflict.
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: resource is already allocated to a project", ErrConflict)
		}
		return nil, err
	}
	if err := s.projects.UpdateManpower(ctx, projectID, 1); err != nil {
		s.log.Warn().Err(err).Msg("manpower counter sync failed")
	}
	allocation.Resource = resource
	return allocation, nil
}

func (s *ResourceService) GetAllocation(ctx context.Context, id uuid.UUID) (*model.Allocation, error) {
	allocation, err := s.resources.GetAllocation(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return allocation, nil
}

func (s *ResourceService) ListAllocations(ctx context.Context, projectID uuid.UUID) ([]model.Allocation, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, translate(err)
	}
	return s.resources.ListAllocationsByProject(ctx, projectID)
}

type AllocationUpdateInput struct {
	HoursAllocated *float64
	EndDate        *time.Time
}

func (s *ResourceService) UpdateAllocation(ctx context.Context, principal model.Principal, id uuid.UUID, input AllocationUpdateInput) (*model.Allocation, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	allocation, err := s.resources.GetAllocation(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if input.HoursAllocated != nil {
		if *input.HoursAllocated < 0 {
			return nil, fmt.Errorf("%w: hours allocated cannot be negative", ErrInvalidInput)
		}
		allocation.HoursAllocated = *input.HoursAllocated
	}
	if input.EndDate != nil {
		allocation.EndDate = input.EndDate
	}
	if err := s.resources.UpdateAllocation(ctx, allocation); err != nil {
		return nil, err
	}
	return allocation, nil
}

// Deallocate marks an allocation inactive, freeing the resource for a
// new assignment.
func (s *ResourceService) Deallocate(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsElevated() {
		return ErrPermissionDenied
	}
	allocation, err := s.resources.GetAllocation(ctx, id)
	if err != nil {
		return translate(err)
	}
	if !allocation.IsActive {
		return nil
	}
	allocation.IsActive = false
	now := time.Now()
	if allocation.EndDate == nil {
		allocation.EndDate = &now
	}
	if err := s.resources.UpdateAllocation(ctx, allocation); err != nil {
		return err
	}
	if err := s.projects.UpdateManpower(ctx, allocation.ProjectID, -1); err != nil {
		s.log.Warn().Err(err).Msg("manpower counter sync failed")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
