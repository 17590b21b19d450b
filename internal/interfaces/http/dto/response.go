package dto

import (
	"strings"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// Response is the envelope every API endpoint returns
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo carries a machine-readable code and a human-readable message
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries pagination details for list responses
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewSuccessResponseWithMeta wraps a page of data with pagination meta
func NewSuccessResponseWithMeta(data any, meta Meta) Response {
	return Response{Success: true, Data: data, Meta: &meta}
}

// NewErrorResponse wraps an error code and message in a failure envelope
func NewErrorResponse(code, message string) Response {
	return Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}

// PaginatedMeta builds response meta from a domain page
func PaginatedMeta[T any](page shared.Paginated[T]) Meta {
	return Meta{
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

// ListRequest is the shared query shape of list endpoints
type ListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
}

// ToFilter converts the request into a domain filter, applying defaults
// and clamping the page size.
func (r ListRequest) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if r.Page > 0 {
		filter.Page = r.Page
	}
	if r.PageSize > 0 {
		filter.PageSize = r.PageSize
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	if r.OrderBy != "" {
		filter.OrderBy = r.OrderBy
	}
	if dir := strings.ToLower(r.OrderDir); dir == "asc" || dir == "desc" {
		filter.OrderDir = dir
	}
	filter.Search = strings.TrimSpace(r.Search)
	filter.IsActive = r.IsActive
	return filter
}
