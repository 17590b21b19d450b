package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jubilee-retail/backoffice/internal/application/partner"
	"github.com/jubilee-retail/backoffice/internal/application/table"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testContextWithURL(rawURL string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, rawURL, nil)
	return c
}

func TestTableQuery_FromFilterAndColumnParams(t *testing.T) {
	c := testContextWithURL("/branches?f_status=active&f_status=locked&f_city=Lahore&page=2")
	filter := shared.Filter{Search: "north", OrderBy: "name", OrderDir: "asc", Page: 2, PageSize: 50}

	q := tableQuery(c, filter)

	assert.Equal(t, "north", q.Search)
	assert.Equal(t, "name", q.SortBy)
	assert.Equal(t, "asc", q.SortDir)
	assert.Equal(t, 2, q.Page)
	assert.ElementsMatch(t, []string{"active", "locked"}, q.Selected["status"])
	assert.Equal(t, []string{"Lahore"}, q.Selected["city"])
	_, hasPage := q.Selected["page"]
	assert.False(t, hasPage, "only f_ prefixed params become column filters")
}

func TestTableQuery_NoColumnParams(t *testing.T) {
	c := testContextWithURL("/branches")
	q := tableQuery(c, shared.DefaultFilter())
	assert.Nil(t, q.Selected)
}

func TestExportRequested(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())

	c := testContextWithURL("/branches")
	_, requested, ok := exportRequested(&h, c)
	assert.True(t, ok)
	assert.False(t, requested)

	c = testContextWithURL("/branches?export=csv")
	format, requested, ok := exportRequested(&h, c)
	assert.True(t, ok)
	assert.True(t, requested)
	assert.Equal(t, table.FormatCSV, format)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/branches?export=pdf", nil)
	_, _, ok = exportRequested(&h, c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_EXPORT_FORMAT")
}

func TestWriteDataset_CSVReflectsFilteredView(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/branches?export=csv&f_is_active=true", nil)

	rows := []partner.BranchDTO{
		{Code: "BR-01", Name: "North", IsActive: true},
		{Code: "BR-02", Name: "South", IsActive: false},
	}
	filter := shared.DefaultFilter()
	filter.OrderBy = "code"
	filter.OrderDir = "asc"

	writeDataset(&h, c, "branches", branchColumns(), rows, filter, table.FormatCSV)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `"branches.csv"`)

	body := w.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2, "header plus the one active branch")
	assert.Contains(t, lines[0], "Code")
	assert.Contains(t, lines[1], "BR-01")
	assert.NotContains(t, body, "BR-02")
}
