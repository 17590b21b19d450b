package shared

import "context"

// TransactionManager runs a function atomically. Repository calls made
// with the context it provides join the same transaction.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// Filter represents common list query options shared by all repositories.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	IsActive *bool
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page < 1 || f.PageSize < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// CollectAll drains a paged list query page by page. Export views use
// it so the file reflects every matching row, not just the first page.
func CollectAll[T any](list func(Filter) (Paginated[T], error)) ([]T, error) {
	filter := DefaultFilter()
	filter.PageSize = 1000
	var all []T
	for {
		page, err := list(filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if len(page.Items) < filter.PageSize || int64(len(all)) >= page.Total {
			return all, nil
		}
		filter.Page++
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
