package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMenu(t *testing.T, repo *GormMenuRepository, name, url string, parentID *uuid.UUID, sortOrder int) *identity.Menu {
	t.Helper()
	menu, err := identity.NewMenu(name, url, "", parentID, sortOrder)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), menu))
	return menu
}

func TestGormMenuRepository_RightsForRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMenuRepository(db)
	ctx := context.Background()

	setup := seedMenu(t, repo, "Setup", "", nil, 1)
	branches := seedMenu(t, repo, "Branches", "/branches", &setup.ID, 1)
	orders := seedMenu(t, repo, "Orders", "/orders", nil, 2)
	hidden := seedMenu(t, repo, "Hidden", "/hidden", nil, 3)
	hidden.Deactivate()
	require.NoError(t, repo.Save(ctx, hidden))

	roleID := uuid.New()
	require.NoError(t, repo.ReplaceGrants(ctx, roleID, []identity.RoleMenuGrant{
		{MenuID: setup.ID, CanView: true},
		{MenuID: branches.ID, CanView: true, CanCreate: true},
		{MenuID: orders.ID, CanView: true, CanEdit: true},
		{MenuID: hidden.ID, CanView: true},
	}))

	rights, err := repo.RightsForRole(ctx, roleID)
	require.NoError(t, err)

	// The deactivated menu is excluded even though a grant row exists
	require.Len(t, rights, 3)
	byName := make(map[string]identity.MenuRight)
	for _, r := range rights {
		byName[r.Name] = r
	}
	assert.True(t, byName["Branches"].CanCreate)
	assert.False(t, byName["Branches"].CanEdit)
	assert.True(t, byName["Orders"].CanEdit)
	require.NotNil(t, byName["Branches"].ParentID)
	assert.Equal(t, setup.ID, *byName["Branches"].ParentID)

	tree := identity.BuildNavigationTree(rights)
	require.Len(t, tree, 2)
	assert.Equal(t, "Setup", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Branches", tree[0].Children[0].Name)
}

func TestGormMenuRepository_ReplaceGrantsSwapsWholesale(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMenuRepository(db)
	ctx := context.Background()

	first := seedMenu(t, repo, "First", "/first", nil, 1)
	second := seedMenu(t, repo, "Second", "/second", nil, 2)

	roleID := uuid.New()
	require.NoError(t, repo.ReplaceGrants(ctx, roleID, []identity.RoleMenuGrant{
		{MenuID: first.ID, CanView: true},
	}))
	require.NoError(t, repo.ReplaceGrants(ctx, roleID, []identity.RoleMenuGrant{
		{MenuID: second.ID, CanView: true, CanDelete: true},
	}))

	rights, err := repo.RightsForRole(ctx, roleID)
	require.NoError(t, err)
	require.Len(t, rights, 1)
	assert.Equal(t, "Second", rights[0].Name)
	assert.True(t, rights[0].CanDelete)

	require.NoError(t, repo.ReplaceGrants(ctx, roleID, nil))
	rights, err = repo.RightsForRole(ctx, roleID)
	require.NoError(t, err)
	assert.Empty(t, rights)
}

func TestGormMenuRepository_DeleteDetachesChildrenAndGrants(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMenuRepository(db)
	ctx := context.Background()

	parent := seedMenu(t, repo, "Parent", "", nil, 1)
	child := seedMenu(t, repo, "Child", "/child", &parent.ID, 1)

	roleID := uuid.New()
	require.NoError(t, repo.ReplaceGrants(ctx, roleID, []identity.RoleMenuGrant{
		{MenuID: parent.ID, CanView: true},
		{MenuID: child.ID, CanView: true},
	}))

	require.NoError(t, repo.Delete(ctx, parent.ID))

	_, err := repo.FindByID(ctx, parent.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	orphan, err := repo.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentID)

	rights, err := repo.RightsForRole(ctx, roleID)
	require.NoError(t, err)
	require.Len(t, rights, 1)
	assert.Equal(t, "Child", rights[0].Name)
}
