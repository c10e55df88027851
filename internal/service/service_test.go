package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/repository"
)

// testEnv wires every service against an in-memory SQLite database.
type testEnv struct {
	db         *gorm.DB
	companies  *CompanyService
	projects   *ProjectService
	finances   *FinanceService
	categories *CategoryService
	resources  *ResourceService
	attendance *AttendanceService
	materials  *MaterialService

	companyRepo  *repository.CompanyRepository
	projectRepo  *repository.ProjectRepository
	txRepo       *repository.TransactionRepository
	resourceRepo *repository.ResourceRepository
	materialRepo *repository.MaterialRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = database.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.Project{},
		&model.Category{},
		&model.Transaction{},
		&model.Attachment{},
		&model.Resource{},
		&model.Allocation{},
		&model.Attendance{},
		&model.MaterialRequest{},
		&model.MaterialPurchase{},
	)
	require.NoError(t, err, "failed to migrate test database")

	log := zerolog.Nop()
	companyRepo := repository.NewCompanyRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	txRepo := repository.NewTransactionRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	resourceRepo := repository.NewResourceRepository(database)
	attendanceRepo := repository.NewAttendanceRepository(database)
	materialRepo := repository.NewMaterialRepository(database)

	return &testEnv{
		db:           database,
		companies:    NewCompanyService(companyRepo, projectRepo),
		projects:     NewProjectService(projectRepo, companyRepo, txRepo, resourceRepo, log),
		finances:     NewFinanceService(txRepo, projectRepo, categoryRepo, materialRepo, []string{"materials", "labor", "other"}, log),
		categories:   NewCategoryService(categoryRepo),
		resources:    NewResourceService(resourceRepo, projectRepo, log),
		attendance:   NewAttendanceService(attendanceRepo, resourceRepo),
		materials:    NewMaterialService(materialRepo, projectRepo, txRepo, log),
		companyRepo:  companyRepo,
		projectRepo:  projectRepo,
		txRepo:       txRepo,
		resourceRepo: resourceRepo,
		materialRepo: materialRepo,
	}
}

func adminPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Name: "Admin", Role: model.RoleAdmin}
}

func managerPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Name: "Manager", Role: model.RoleManager}
}

func userPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Name: "User", Role: model.RoleUser}
}

// seedProject creates a company and a project under it.
func (env *testEnv) seedProject(t *testing.T) *model.Project {
	t.Helper()
	ctx := context.Background()

	company, err := env.companies.Create(ctx, adminPrincipal(), CompanyInput{Name: "Acme Construction"})
	require.NoError(t, err)

	project, err := env.projects.Create(ctx, adminPrincipal(), ProjectInput{
		Name:      "Warehouse Build",
		CompanyID: company.ID,
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return project
}

func amount(v float64) *float64 {
	return &v
}
