package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkenzh/buildops/internal/model"
)

func (env *testEnv) seedResource(t *testing.T, name string, rate float64) *model.Resource {
	t.Helper()
	resource, err := env.resources.Create(context.Background(), managerPrincipal(), ResourceInput{
		Name:       name,
		Role:       "welder",
		HourlyRate: amount(rate),
		Skills:     []string{"welding"},
	})
	require.NoError(t, err)
	return resource
}

func TestCreateResourceRequiresElevatedRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.resources.Create(context.Background(), userPrincipal(), ResourceInput{Name: "Bob"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateResourceRequiresName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.resources.Create(context.Background(), managerPrincipal(), ResourceInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAllocateResourceToProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	resource := env.seedResource(t, "Bob Mason", 40)

	allocation, err := env.resources.Allocate(ctx, managerPrincipal(), project.ID, AllocationInput{
		ResourceID:     resource.ID,
		HoursAllocated: 160,
		StartDate:      time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, allocation.IsActive)
	assert.Equal(t, project.ID, allocation.ProjectID)

	reloaded, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.ManpowerAllocated)
}

func TestAllocateSecondProjectConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	resource := env.seedResource(t, "Bob Mason", 40)
	manager := managerPrincipal()

	_, err := env.resources.Allocate(ctx, manager, project.ID, AllocationInput{ResourceID: resource.ID})
	require.NoError(t, err)

	other, err := env.projects.Create(ctx, adminPrincipal(), ProjectInput{
		Name:      "Office Fit-out",
		CompanyID: project.CompanyID,
		StartDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = env.resources.Allocate(ctx, manager, other.ID, AllocationInput{ResourceID: resource.ID})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeallocateFreesResourceForReallocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	resource := env.seedResource(t, "Bob Mason", 40)
	manager := managerPrincipal()

	allocation, err := env.resources.Allocate(ctx, manager, project.ID, AllocationInput{ResourceID: resource.ID})
	require.NoError(t, err)

	require.NoError(t, env.resources.Deallocate(ctx, manager, allocation.ID))

	ended, err := env.resources.GetAllocation(ctx, allocation.ID)
	require.NoError(t, err)
	assert.False(t, ended.IsActive)
	assert.NotNil(t, ended.EndDate)

	reloaded, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.ManpowerAllocated)

	// The resource can now be assigned again.
	_, err = env.resources.Allocate(ctx, manager, project.ID, AllocationInput{ResourceID: resource.ID})
	require.NoError(t, err)
}

func TestDeallocateTwiceIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	resource := env.seedResource(t, "Bob Mason", 40)
	manager := managerPrincipal()

	allocation, err := env.resources.Allocate(ctx, manager, project.ID, AllocationInput{ResourceID: resource.ID})
	require.NoError(t, err)

	require.NoError(t, env.resources.Deallocate(ctx, manager, allocation.ID))
	require.NoError(t, env.resources.Deallocate(ctx, manager, allocation.ID))

	reloaded, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.ManpowerAllocated, "second deallocate must not decrement again")
}

func TestAllocateInactiveResourceRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	resource := env.seedResource(t, "Bob Mason", 40)
	manager := managerPrincipal()

	require.NoError(t, env.resources.Deactivate(ctx, manager, resource.ID))

	_, err := env.resources.Allocate(ctx, manager, project.ID, AllocationInput{ResourceID: resource.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeactivateResourceEndsAllocations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	resource := env.seedResource(t, "Bob Mason", 40)
	manager := managerPrincipal()

	allocation, err := env.resources.Allocate(ctx, manager, project.ID, AllocationInput{ResourceID: resource.ID})
	require.NoError(t, err)

	require.NoError(t, env.resources.Deactivate(ctx, manager, resource.ID))

	ended, err := env.resources.GetAllocation(ctx, allocation.ID)
	require.NoError(t, err)
	assert.False(t, ended.IsActive)

	reloaded, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.ManpowerAllocated)

	deactivated, err := env.resources.Get(ctx, resource.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestListAllocationsUnknownProject(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.resources.ListAllocations(context.Background(), adminPrincipal().UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAllocationHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.seedProject(t)
	resource := env.seedResource(t, "Bob Mason", 40)
	manager := managerPrincipal()

	allocation, err := env.resources.Allocate(ctx, manager, project.ID, AllocationInput{
		ResourceID:     resource.ID,
		HoursAllocated: 80,
	})
	require.NoError(t, err)

	updated, err := env.resources.UpdateAllocation(ctx, manager, allocation.ID, AllocationUpdateInput{
		HoursAllocated: amount(120),
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.HoursAllocated)

	_, err = env.resources.UpdateAllocation(ctx, manager, allocation.ID, AllocationUpdateInput{
		HoursAllocated: amount(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
