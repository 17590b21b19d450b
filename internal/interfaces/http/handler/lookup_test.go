package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apppartner "github.com/jubilee-retail/backoffice/internal/application/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCityRepository struct {
	cities []*partner.City
}

func (s *stubCityRepository) Save(ctx context.Context, city *partner.City) error { return nil }
func (s *stubCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.City, error) {
	return nil, shared.ErrNotFound
}
func (s *stubCityRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.City], error) {
	return shared.NewPaginated(s.cities, int64(len(s.cities)), filter.Page, filter.PageSize), nil
}
func (s *stubCityRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubCityRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}

type stubCourierRepository struct {
	couriers []*partner.Courier
}

func (s *stubCourierRepository) Save(ctx context.Context, courier *partner.Courier) error {
	return nil
}
func (s *stubCourierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Courier, error) {
	return nil, shared.ErrNotFound
}
func (s *stubCourierRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Courier], error) {
	return shared.NewPaginated(s.couriers, int64(len(s.couriers)), filter.Page, filter.PageSize), nil
}
func (s *stubCourierRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubCourierRepository) ExistsByServiceCode(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func newLookupTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	lahore, err := partner.NewCity("Lahore", "Punjab")
	require.NoError(t, err)
	karachi, err := partner.NewCity("Karachi", "Sindh")
	require.NoError(t, err)
	karachi.Deactivate()

	tcs, err := partner.NewCourier("TCS Express", "TCS-OVN")
	require.NoError(t, err)

	service := apppartner.NewLookupService(
		&stubCityRepository{cities: []*partner.City{lahore, karachi}},
		&stubCourierRepository{couriers: []*partner.Courier{tcs}},
		zap.NewNop(),
	)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewLookupHandler(service, zap.NewNop()).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestListCities_ExportCSV(t *testing.T) {
	engine := newLookupTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cities?export=csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `"cities.csv"`)

	body := w.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3, "header plus both cities")
	assert.Contains(t, lines[0], "Province")
	assert.Contains(t, body, "Lahore")
	assert.Contains(t, body, "Karachi")
}

func TestListCities_ExportReflectsColumnFilter(t *testing.T) {
	engine := newLookupTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/cities?export=csv&f_is_active=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Lahore")
	assert.NotContains(t, body, "Karachi", "deactivated city is filtered out")
}

func TestListCouriers_ExportCSV(t *testing.T) {
	engine := newLookupTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/couriers?export=csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `"couriers.csv"`)
	assert.Contains(t, w.Body.String(), "TCS-OVN")
}

func TestListCouriers_UnknownExportFormatRejected(t *testing.T) {
	engine := newLookupTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/couriers?export=pdf", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_EXPORT_FORMAT")
}
