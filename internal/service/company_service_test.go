package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkenzh/buildops/internal/model"
)

func TestCreateCompanyDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := managerPrincipal()

	_, err := env.companies.Create(ctx, manager, CompanyInput{
		Name:         "Acme Construction",
		ContactEmail: "office@acme.example",
	})
	require.NoError(t, err)

	_, err = env.companies.Create(ctx, manager, CompanyInput{
		Name:         "Acme Clone",
		ContactEmail: "OFFICE@ACME.EXAMPLE",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateCompanyRequiresElevatedRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.companies.Create(context.Background(), userPrincipal(), CompanyInput{Name: "Acme"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateCompanyKeepsOwnEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := managerPrincipal()

	company, err := env.companies.Create(ctx, manager, CompanyInput{
		Name:         "Acme Construction",
		ContactEmail: "office@acme.example",
	})
	require.NoError(t, err)

	// Re-submitting the company's own email is not a duplicate.
	updated, err := env.companies.Update(ctx, manager, company.ID, CompanyInput{
		ContactEmail: "office@acme.example",
		ContactPhone: "+1 555 0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", updated.ContactPhone)
}

func TestDeleteCompanyBlockedByProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	err := env.companies.Delete(ctx, adminPrincipal(), project.CompanyID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, env.projects.Delete(ctx, adminPrincipal(), project.ID))
	require.NoError(t, env.companies.Delete(ctx, adminPrincipal(), project.CompanyID))
}

func TestDeleteCompanyAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company, err := env.companies.Create(ctx, managerPrincipal(), CompanyInput{Name: "Acme"})
	require.NoError(t, err)

	err = env.companies.Delete(ctx, managerPrincipal(), company.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestProjectListSyncedOnCompany(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)

	company, err := env.companies.Get(ctx, project.CompanyID)
	require.NoError(t, err)
	assert.True(t, company.ProjectIDs.Contains(project.ID))

	require.NoError(t, env.projects.Delete(ctx, adminPrincipal(), project.ID))

	company, err = env.companies.Get(ctx, project.CompanyID)
	require.NoError(t, err)
	assert.False(t, company.ProjectIDs.Contains(project.ID))
}

func TestProjectMoveUpdatesBothCompanies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	admin := adminPrincipal()

	other, err := env.companies.Create(ctx, admin, CompanyInput{Name: "Beta Builders"})
	require.NoError(t, err)

	_, err = env.projects.Update(ctx, admin, project.ID, ProjectInput{CompanyID: other.ID})
	require.NoError(t, err)

	previous, err := env.companies.Get(ctx, project.CompanyID)
	require.NoError(t, err)
	assert.False(t, previous.ProjectIDs.Contains(project.ID))

	current, err := env.companies.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, current.ProjectIDs.Contains(project.ID))
}

func TestDeleteProjectBlockedByTransactions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	admin := adminPrincipal()

	_, err := env.finances.Create(ctx, admin, TransactionInput{
		Type:      model.TransactionExpense,
		Amount:    amount(10),
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	err = env.projects.Delete(ctx, admin, project.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteProjectBlockedByAllocations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	resource := env.seedResource(t, "Bob Mason", 40)

	_, err := env.resources.Allocate(ctx, managerPrincipal(), project.ID, AllocationInput{
		ResourceID: resource.ID,
	})
	require.NoError(t, err)

	err = env.projects.Delete(ctx, adminPrincipal(), project.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateProjectUnknownCompany(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.projects.Create(context.Background(), adminPrincipal(), ProjectInput{
		Name:      "Orphan",
		CompanyID: adminPrincipal().UserID,
		StartDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProjectRejectsBadStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company, err := env.companies.Create(ctx, adminPrincipal(), CompanyInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = env.projects.Create(ctx, adminPrincipal(), ProjectInput{
		Name:      "Warehouse",
		CompanyID: company.ID,
		Status:    "archived",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
