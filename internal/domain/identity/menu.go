package identity

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// Menu represents a navigable screen of the back office.
// Nesting is one level deep: a menu either has no parent (top level,
// possibly a group header) or points at a top-level parent.
type Menu struct {
	shared.BaseEntity
	Name      string
	URL       string
	Icon      string
	ParentID  *uuid.UUID
	SortOrder int
	IsActive  bool
}

// NewMenu creates a new menu entry
func NewMenu(name, url, icon string, parentID *uuid.UUID, sortOrder int) (*Menu, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_MENU_NAME", "Menu name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_MENU_NAME", "Menu name cannot exceed 100 characters")
	}
	url = strings.TrimSpace(url)
	if len(url) > 200 {
		return nil, shared.NewDomainError("INVALID_MENU_URL", "Menu URL cannot exceed 200 characters")
	}
	return &Menu{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		URL:        url,
		Icon:       icon,
		ParentID:   parentID,
		SortOrder:  sortOrder,
		IsActive:   true,
	}, nil
}

// Activate shows the menu again
func (m *Menu) Activate() {
	m.IsActive = true
	m.Touch()
}

// Deactivate hides the menu from navigation and route guards
func (m *Menu) Deactivate() {
	m.IsActive = false
	m.Touch()
}

// MenuRight is one granted menu entry with its permission flags.
// It is the unit the navigation tree and the route guard are built from.
type MenuRight struct {
	MenuID    uuid.UUID
	Name      string
	URL       string
	Icon      string
	ParentID  *uuid.UUID
	SortOrder int
	CanView   bool
	CanCreate bool
	CanEdit   bool
	CanDelete bool
}

// HasRight returns whether the flag for the given action is set.
// Action names match the HTTP verb mapping: view, create, edit, delete.
func (r MenuRight) HasRight(action string) bool {
	switch action {
	case RightView:
		return r.CanView
	case RightCreate:
		return r.CanCreate
	case RightEdit:
		return r.CanEdit
	case RightDelete:
		return r.CanDelete
	default:
		return false
	}
}

// Right actions
const (
	RightView   = "view"
	RightCreate = "create"
	RightEdit   = "edit"
	RightDelete = "delete"
)

// NavigationNode is a menu entry with its attached children, ready for
// rendering as a sidebar tree.
type NavigationNode struct {
	MenuRight
	Children []MenuRight
}

// BuildNavigationTree turns a flat rights list into the sidebar tree.
// Top-level entries are those with no parent; children attach to their
// parent by id. Entries pointing at a parent that is not in the list are
// dropped (the caller decides whether to log them, see OrphanedRights).
// The top level and each child list are ordered by SortOrder ascending;
// the sort is stable, so entries with equal SortOrder keep input order.
func BuildNavigationTree(rights []MenuRight) []NavigationNode {
	nodes := make([]NavigationNode, 0)
	index := make(map[uuid.UUID]int)
	for _, r := range rights {
		if r.ParentID == nil {
			index[r.MenuID] = len(nodes)
			nodes = append(nodes, NavigationNode{MenuRight: r})
		}
	}
	for _, r := range rights {
		if r.ParentID == nil {
			continue
		}
		if i, ok := index[*r.ParentID]; ok {
			nodes[i].Children = append(nodes[i].Children, r)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SortOrder < nodes[j].SortOrder
	})
	for i := range nodes {
		children := nodes[i].Children
		sort.SliceStable(children, func(a, b int) bool {
			return children[a].SortOrder < children[b].SortOrder
		})
	}
	return nodes
}

// OrphanedRights returns the entries whose parent id is not present in
// the list. BuildNavigationTree drops these silently; callers log them.
func OrphanedRights(rights []MenuRight) []MenuRight {
	present := make(map[uuid.UUID]bool, len(rights))
	for _, r := range rights {
		present[r.MenuID] = true
	}
	var orphans []MenuRight
	for _, r := range rights {
		if r.ParentID != nil && !present[*r.ParentID] {
			orphans = append(orphans, r)
		}
	}
	return orphans
}

// RightsForRoute finds the granted entry whose URL exactly matches the
// given route. Matching is exact string comparison, no prefix or pattern
// matching. Returns false if no entry matches.
func RightsForRoute(rights []MenuRight, route string) (MenuRight, bool) {
	for _, r := range rights {
		if r.URL != "" && r.URL == route {
			return r, true
		}
	}
	return MenuRight{}, false
}

// RightForMethod maps an HTTP method to the permission flag it requires
func RightForMethod(method string) string {
	switch method {
	case "POST":
		return RightCreate
	case "PUT", "PATCH":
		return RightEdit
	case "DELETE":
		return RightDelete
	default:
		return RightView
	}
}
