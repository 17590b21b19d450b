// Package table implements the schema-driven dataset engine behind the
// list screens: global filtering, per-column multi-select filtering,
// stable sorting, pagination, and export of the current view.
package table

import (
	"sort"
	"strings"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// Column describes one column of a dataset
type Column[T any] struct {
	Key     string
	Title   string
	Value   func(T) string
	Visible bool
	// Options is the closed value set for a multi-select filter.
	// Empty means the column has no multi-select filter.
	Options []string
}

// Query is the client's current view of a dataset: filters, sort, and
// page selection.
type Query struct {
	Search   string
	Selected map[string][]string // column key -> selected filter values
	SortBy   string              // column key; empty = original order
	SortDir  string              // asc (default) or desc
	Page     int
	PageSize int
}

// Table binds a column schema to a row set
type Table[T any] struct {
	columns []Column[T]
	rows    []T
}

// New creates a table over the given schema and rows. Row order is
// preserved as the original order restored when sorting is cleared.
func New[T any](columns []Column[T], rows []T) *Table[T] {
	return &Table[T]{columns: columns, rows: rows}
}

// Columns returns the full column schema
func (t *Table[T]) Columns() []Column[T] {
	return t.columns
}

// VisibleColumns returns only the columns shown on screen and in exports
func (t *Table[T]) VisibleColumns() []Column[T] {
	visible := make([]Column[T], 0, len(t.columns))
	for _, c := range t.columns {
		if c.Visible {
			visible = append(visible, c)
		}
	}
	return visible
}

func (t *Table[T]) column(key string) (Column[T], bool) {
	for _, c := range t.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// View computes the current view: rows passing the global and
// multi-select filters, in the requested sort order. Applying the same
// query twice yields the same view; clearing SortBy restores the
// original row order.
func (t *Table[T]) View(q Query) []T {
	view := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if t.matches(row, q) {
			view = append(view, row)
		}
	}

	if q.SortBy != "" {
		if col, ok := t.column(q.SortBy); ok {
			desc := strings.EqualFold(q.SortDir, "desc")
			sort.SliceStable(view, func(i, j int) bool {
				a, b := col.Value(view[i]), col.Value(view[j])
				less := strings.ToLower(a) < strings.ToLower(b)
				if desc {
					return !less && !strings.EqualFold(a, b)
				}
				return less
			})
		}
	}

	return view
}

// matches applies the global substring filter and the multi-select
// filters to one row
func (t *Table[T]) matches(row T, q Query) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		found := false
		for _, c := range t.columns {
			if !c.Visible {
				continue
			}
			if strings.Contains(strings.ToLower(c.Value(row)), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for key, selected := range q.Selected {
		// An empty selection means the filter is not applied
		if len(selected) == 0 {
			continue
		}
		col, ok := t.column(key)
		if !ok {
			continue
		}
		value := col.Value(row)
		match := false
		for _, s := range selected {
			if s == value {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}

	return true
}

// Paginate runs the query and returns one page of the view
func (t *Table[T]) Paginate(q Query) shared.Paginated[T] {
	view := t.View(q)

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = 20
	}

	start := (page - 1) * size
	if start > len(view) {
		start = len(view)
	}
	end := start + size
	if end > len(view) {
		end = len(view)
	}

	return shared.NewPaginated(view[start:end], int64(len(view)), page, size)
}
