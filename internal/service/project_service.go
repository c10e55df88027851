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

type ProjectService struct {
	projects     *repository.ProjectRepository
	companies    *repository.CompanyRepository
	transactions *repository.TransactionRepository
	resources    *repository.ResourceRepository
	log          zerolog.Logger
}

func NewProjectService(
	projects *repository.ProjectRepository,
	companies *repository.CompanyRepository,
	transactions *repository.TransactionRepository,
	resources *repository.ResourceRepository,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:     projects,
		companies:    companies,
		transactions: transactions,
		resources:    resources,
		log:          log,
	}
}

type ProjectInput struct {
	Name        string
	CompanyID   uuid.UUID
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Status      model.ProjectStatus
	Budget      float64
	ManagerIDs  []uuid.UUID
	TeamIDs     []uuid.UUID
}

func (s *ProjectService) Create(ctx context.Context, principal model.Principal, input ProjectInput) (*model.Project, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if input.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("%w: companyId is required", ErrInvalidInput)
	}
	if input.Status == "" {
		input.Status = model.ProjectPlanning
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, input.Status)
	}
	if input.Budget < 0 {
		return nil, fmt.Errorf("%w: budget cannot be negative", ErrInvalidInput)
	}
	if _, err := s.companies.GetByID(ctx, input.CompanyID); err != nil {
		return nil, translate(err)
	}

	project := &model.Project{
		Name:        input.Name,
		CompanyID:   input.CompanyID,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      input.Status,
		Budget:      input.Budget,
		ManagerIDs:  model.UUIDList(input.ManagerIDs),
		TeamIDs:     model.UUIDList(input.TeamIDs),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	// Best-effort back-reference sync; there is no transaction spanning
	// both writes.
	if err := s.companies.SyncProjectRef(ctx, project.CompanyID, project.ID, true); err != nil {
		s.log.Warn().Err(err).Str("project_id", project.ID.String()).Msg("company project list sync failed")
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, companyID uuid.UUID) ([]model.Project, error) {
	return s.projects.List(ctx, companyID)
}

func (s *ProjectService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input ProjectInput) (*model.Project, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	previousCompany := project.CompanyID
	if name := strings.TrimSpace(input.Name); name != "" {
		project.Name = name
	}
	if input.CompanyID != uuid.Nil && input.CompanyID != project.CompanyID {
		if _, err := s.companies.GetByID(ctx, input.CompanyID); err != nil {
			return nil, translate(err)
		}
		project.CompanyID = input.CompanyID
	}
	if input.Description != "" {
		project.Description = input.Description
	}
	if !input.StartDate.IsZero() {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if input.Status != "" {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, input.Status)
		}
		project.Status = input.Status
	}
	if input.Budget > 0 {
		project.Budget = input.Budget
	}
	if input.ManagerIDs != nil {
		project.ManagerIDs = model.UUIDList(input.ManagerIDs)
	}
	if input.TeamIDs != nil {
		project.TeamIDs = model.UUIDList(input.TeamIDs)
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	if project.CompanyID != previousCompany {
		if err := s.companies.SyncProjectRef(ctx, previousCompany, project.ID, false); err != nil {
			s.log.Warn().Err(err).Msg("company project list sync failed")
		}
		if err := s.companies.SyncProjectRef(ctx, project.CompanyID, project.ID, true); err != nil {
			s.log.Warn().Err(err).Msg("company project list sync failed")
		}
	}
	return project, nil
}

// Delete refuses while transactions or allocations still reference the
// project.
func (s *ProjectService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return translate(err)
	}

	txCount, err := s.transactions.CountByProject(ctx, id)
	if err != nil {
		return err
	}
	if txCount > 0 {
		return fmt.Errorf("%w: project has %d transaction(s)", ErrConflict, txCount)
	}
	allocCount, err := s.resources.CountAllocationsByProject(ctx, id)
	if err != nil {
		return err
	}
	if allocCount > 0 {
		return fmt.Errorf("%w: project has %d resource allocation(s)", ErrConflict, allocCount)
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.companies.SyncProjectRef(ctx, project.CompanyID, id, false); err != nil {
		s.log.Warn().Err(err).Msg("company project list sync failed")
	}
	return nil
}
