package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dkenzh/buildops/internal/model"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Company{}, "id = ?", id).Error
}

// ExistsByContactEmail backs the duplicate-company pre-check. Excluding
// an id lets updates keep their own email.
func (r *CompanyRepository) ExistsByContactEmail(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).Model(&model.Company{}).
		Where("lower(contact_email) = ?", email)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// SyncProjectRef pushes or pulls a project id on the company's
// denormalized project list. Best-effort, not atomic with the project
// write itself.
func (r *CompanyRepository) SyncProjectRef(ctx context.Context, companyID, projectID uuid.UUID, add bool) error {
	company, err := r.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if add {
		company.ProjectIDs = company.ProjectIDs.Add(projectID)
	} else {
		company.ProjectIDs = company.ProjectIDs.Remove(projectID)
	}
	return r.db.WithContext(ctx).Model(company).Update("project_ids", company.ProjectIDs).Error
}
