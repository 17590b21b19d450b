package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/jubilee-retail/backoffice/internal/application/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubMenuRepository serves a fixed rights list
type stubMenuRepository struct {
	rights []identity.MenuRight
}

func (s *stubMenuRepository) Save(ctx context.Context, menu *identity.Menu) error { return nil }
func (s *stubMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Menu, error) {
	return nil, nil
}
func (s *stubMenuRepository) FindAll(ctx context.Context) ([]*identity.Menu, error) {
	return nil, nil
}
func (s *stubMenuRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubMenuRepository) RightsForRole(ctx context.Context, roleID uuid.UUID) ([]identity.MenuRight, error) {
	return s.rights, nil
}
func (s *stubMenuRepository) ReplaceGrants(ctx context.Context, roleID uuid.UUID, grants []identity.RoleMenuGrant) error {
	return nil
}

type stubRoleRepository struct{}

func (s *stubRoleRepository) Save(ctx context.Context, role *identity.Role) error { return nil }
func (s *stubRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	return nil, nil
}
func (s *stubRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	return nil, nil
}
func (s *stubRoleRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*identity.Role], error) {
	return shared.Paginated[*identity.Role]{}, nil
}
func (s *stubRoleRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubRoleRepository) CountUsers(ctx context.Context, roleID uuid.UUID) (int64, error) {
	return 0, nil
}

func newRightsTestEngine(rights []identity.MenuRight, roleID uuid.UUID) *gin.Engine {
	menuService := appidentity.NewMenuService(&stubMenuRepository{rights: rights}, &stubRoleRepository{}, zap.NewNop())

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(ContextKeyClaims, &auth.Claims{
			UserID:   uuid.NewString(),
			Username: "jdoe",
			RoleID:   roleID.String(),
		})
	})
	guarded := engine.Group("/api/v1", MenuRights(menuService, "/branches", zap.NewNop()))
	guarded.GET("/branches", func(c *gin.Context) { c.Status(http.StatusOK) })
	guarded.POST("/branches", func(c *gin.Context) { c.Status(http.StatusCreated) })
	guarded.DELETE("/branches/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return engine
}

func TestMenuRights_ViewAllowed(t *testing.T) {
	roleID := uuid.New()
	engine := newRightsTestEngine([]identity.MenuRight{
		{MenuID: uuid.New(), Name: "Branches", URL: "/branches", CanView: true},
	}, roleID)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/branches", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMenuRights_CreateDenied(t *testing.T) {
	roleID := uuid.New()
	engine := newRightsTestEngine([]identity.MenuRight{
		{MenuID: uuid.New(), Name: "Branches", URL: "/branches", CanView: true},
	}, roleID)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/branches", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "create")
	assert.Contains(t, w.Body.String(), "Branches")
}

func TestMenuRights_DeleteAllowed(t *testing.T) {
	roleID := uuid.New()
	engine := newRightsTestEngine([]identity.MenuRight{
		{MenuID: uuid.New(), Name: "Branches", URL: "/branches", CanView: true, CanDelete: true},
	}, roleID)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/branches/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMenuRights_UnknownResourceDenied(t *testing.T) {
	roleID := uuid.New()
	engine := newRightsTestEngine(nil, roleID)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/branches", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestMenuRights_NoClaims(t *testing.T) {
	menuService := appidentity.NewMenuService(&stubMenuRepository{}, &stubRoleRepository{}, zap.NewNop())

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/v1/branches", MenuRights(menuService, "/branches", zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/branches", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
