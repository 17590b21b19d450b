package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func right(name, url string, parent *uuid.UUID, order int) MenuRight {
	return MenuRight{
		MenuID:    uuid.New(),
		Name:      name,
		URL:       url,
		ParentID:  parent,
		SortOrder: order,
		CanView:   true,
	}
}

func TestBuildNavigationTree_AttachesChildrenToParents(t *testing.T) {
	parent := right("Setup", "", nil, 1)
	child1 := right("Cities", "/cities", &parent.MenuID, 2)
	child2 := right("Couriers", "/couriers", &parent.MenuID, 1)
	top := right("Dashboard", "/dashboard", nil, 0)

	tree := BuildNavigationTree([]MenuRight{parent, child1, child2, top})

	require.Len(t, tree, 2)
	assert.Equal(t, "Dashboard", tree[0].Name)
	assert.Equal(t, "Setup", tree[1].Name)
	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, "Couriers", tree[1].Children[0].Name)
	assert.Equal(t, "Cities", tree[1].Children[1].Name)
}

func TestBuildNavigationTree_StableOnEqualSortOrder(t *testing.T) {
	a := right("Agents", "/agents", nil, 5)
	b := right("Branches", "/branches", nil, 5)
	c := right("Clients", "/clients", nil, 5)

	tree := BuildNavigationTree([]MenuRight{a, b, c})

	require.Len(t, tree, 3)
	assert.Equal(t, "Agents", tree[0].Name)
	assert.Equal(t, "Branches", tree[1].Name)
	assert.Equal(t, "Clients", tree[2].Name)
}

func TestBuildNavigationTree_DropsOrphans(t *testing.T) {
	missing := uuid.New()
	top := right("Products", "/products", nil, 1)
	orphan := right("Ghost", "/ghost", &missing, 2)

	tree := BuildNavigationTree([]MenuRight{top, orphan})

	require.Len(t, tree, 1)
	assert.Equal(t, "Products", tree[0].Name)
	assert.Empty(t, tree[0].Children)

	orphans := OrphanedRights([]MenuRight{top, orphan})
	require.Len(t, orphans, 1)
	assert.Equal(t, "Ghost", orphans[0].Name)
}

func TestBuildNavigationTree_EmptyInput(t *testing.T) {
	tree := BuildNavigationTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestRightsForRoute_ExactMatchOnly(t *testing.T) {
	rights := []MenuRight{
		right("Agents", "/agents", nil, 1),
		right("Agent Detail", "/agents/detail", nil, 2),
	}

	r, ok := RightsForRoute(rights, "/agents")
	require.True(t, ok)
	assert.Equal(t, "Agents", r.Name)

	_, ok = RightsForRoute(rights, "/agents/")
	assert.False(t, ok, "trailing slash must not match")

	_, ok = RightsForRoute(rights, "/agents/42")
	assert.False(t, ok, "prefix matching is not performed")
}

func TestRightsForRoute_IgnoresEmptyURLs(t *testing.T) {
	rights := []MenuRight{right("Setup", "", nil, 1)}
	_, ok := RightsForRoute(rights, "")
	assert.False(t, ok)
}

func TestRightForMethod(t *testing.T) {
	assert.Equal(t, RightView, RightForMethod("GET"))
	assert.Equal(t, RightCreate, RightForMethod("POST"))
	assert.Equal(t, RightEdit, RightForMethod("PUT"))
	assert.Equal(t, RightEdit, RightForMethod("PATCH"))
	assert.Equal(t, RightDelete, RightForMethod("DELETE"))
	assert.Equal(t, RightView, RightForMethod("HEAD"))
}

func TestMenuRight_HasRight(t *testing.T) {
	r := MenuRight{CanView: true, CanEdit: true}
	assert.True(t, r.HasRight(RightView))
	assert.False(t, r.HasRight(RightCreate))
	assert.True(t, r.HasRight(RightEdit))
	assert.False(t, r.HasRight(RightDelete))
	assert.False(t, r.HasRight("unknown"))
}
