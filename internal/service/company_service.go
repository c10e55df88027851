package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/repository"
)

type CompanyService struct {
	companies *repository.CompanyRepository
	projects  *repository.ProjectRepository
}

func NewCompanyService(companies *repository.CompanyRepository, projects *repository.ProjectRepository) *CompanyService {
	return &CompanyService{companies: companies, projects: projects}
}

type CompanyInput struct {
	Name         string
	Address      string
	ContactEmail string
	ContactPhone string
	ManagerIDs   []uuid.UUID
}

func (s *CompanyService) Create(ctx context.Context, principal model.Principal, input CompanyInput) (*model.Company, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}

	duplicate, err := s.companies.ExistsByContactEmail(ctx, input.ContactEmail, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, fmt.Errorf("%w: a company with this email already exists", ErrConflict)
	}

	company := &model.Company{
		Name:         input.Name,
		Address:      input.Address,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		ManagerIDs:   model.UUIDList(input.ManagerIDs),
		ProjectIDs:   model.UUIDList{},
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return company, nil
}

func (s *CompanyService) List(ctx context.Context) ([]model.Company, error) {
	return s.companies.List(ctx)
}

func (s *CompanyService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input CompanyInput) (*model.Company, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if email := strings.TrimSpace(input.ContactEmail); email != "" && !strings.EqualFold(email, company.ContactEmail) {
		duplicate, err := s.companies.ExistsByContactEmail(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, fmt.Errorf("%w: a company with this email already exists", ErrConflict)
		}
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		company.Name = name
	}
	if input.Address != "" {
		company.Address = input.Address
	}
	if input.ContactEmail != "" {
		company.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != "" {
		company.ContactPhone = input.ContactPhone
	}
	if input.ManagerIDs != nil {
		company.ManagerIDs = model.UUIDList(input.ManagerIDs)
	}
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete refuses while the company still owns projects.
func (s *CompanyService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		return translate(err)
	}
	count, err := s.projects.CountByCompany(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: company has %d project(s); delete or reassign them first", ErrConflict, count)
	}
	return s.companies.Delete(ctx, id)
}
