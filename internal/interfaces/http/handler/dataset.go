package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jubilee-retail/backoffice/internal/application/table"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// columnFilterPrefix marks query parameters carrying per-column
// multi-select filter values, e.g. ?f_status=approved&f_status=issued
const columnFilterPrefix = "f_"

// tableQuery builds a dataset query from the request: the shared filter
// supplies search, sort and paging, and f_<column> query parameters
// supply the per-column selections.
func tableQuery(c *gin.Context, filter shared.Filter) table.Query {
	q := table.Query{
		Search:   filter.Search,
		SortBy:   filter.OrderBy,
		SortDir:  filter.OrderDir,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for key, values := range c.Request.URL.Query() {
		col, ok := strings.CutPrefix(key, columnFilterPrefix)
		if !ok || col == "" {
			continue
		}
		if q.Selected == nil {
			q.Selected = make(map[string][]string)
		}
		q.Selected[col] = append(q.Selected[col], values...)
	}
	return q
}

// exportRequested reads the export query parameter. A response has been
// written when ok is false.
func exportRequested(h *BaseHandler, c *gin.Context) (table.ExportFormat, bool, bool) {
	format, requested, err := table.ParseExportFormat(c.Query("export"))
	if err != nil {
		h.BadRequest(c, dto.ErrCodeExportUnsupported, "Export format must be csv or xlsx")
		return format, false, false
	}
	return format, requested, true
}

// writeDataset streams the current view of a dataset as a file
// download. The same search, sort and column filters that shape the
// list response shape the export; pagination is ignored.
func writeDataset[T any](h *BaseHandler, c *gin.Context, base string, columns []table.Column[T], rows []T, filter shared.Filter, format table.ExportFormat) {
	q := tableQuery(c, filter)
	tbl := table.New(columns, rows)

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(base)))
	if err := tbl.Export(c.Writer, q, format); err != nil {
		// Headers are already out; all that is left is to log
		h.logger.Error("Dataset export failed", zap.String("dataset", base), zap.Error(err))
	}
}
