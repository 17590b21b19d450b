package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/application/partner"
	"github.com/jubilee-retail/backoffice/internal/application/table"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BranchHandler serves branch administration
type BranchHandler struct {
	BaseHandler
	branchService *partner.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *partner.BranchService, logger *zap.Logger) *BranchHandler {
	return &BranchHandler{BaseHandler: NewBaseHandler(logger), branchService: branchService}
}

// RegisterRoutes mounts the branch endpoints
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	{
		branches.GET("", h.List)
		branches.GET("/:id", h.Get)
		branches.POST("", h.Create)
		branches.PUT("/:id", h.Update)
		branches.POST("/:id/activate", h.Activate)
		branches.POST("/:id/deactivate", h.Deactivate)
		branches.DELETE("/:id", h.Delete)
	}
}

func branchColumns() []table.Column[partner.BranchDTO] {
	return []table.Column[partner.BranchDTO]{
		{Key: "code", Title: "Code", Visible: true, Value: func(b partner.BranchDTO) string { return b.Code }},
		{Key: "name", Title: "Name", Visible: true, Value: func(b partner.BranchDTO) string { return b.Name }},
		{Key: "address", Title: "Address", Visible: true, Value: func(b partner.BranchDTO) string { return b.Address }},
		{Key: "phone", Title: "Phone", Visible: true, Value: func(b partner.BranchDTO) string { return b.Phone }},
		{Key: "email", Title: "Email", Visible: true, Value: func(b partner.BranchDTO) string { return b.Email }},
		{Key: "is_active", Title: "Active", Visible: true, Options: []string{"true", "false"}, Value: func(b partner.BranchDTO) string { return strconv.FormatBool(b.IsActive) }},
		{Key: "created_at", Title: "Created", Visible: true, Value: func(b partner.BranchDTO) string { return b.CreatedAt.Format(time.RFC3339) }},
	}
}

// List returns a page of branches, or the current view as a file when
// export=csv|xlsx is requested.
func (h *BranchHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	format, requested, ok := exportRequested(&h.BaseHandler, c)
	if !ok {
		return
	}
	if requested {
		rows, err := h.branchService.ListAll(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "branches", branchColumns(), rows, filter, format)
		return
	}

	page, err := h.branchService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get returns one branch
func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	branch, err := h.branchService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, branch)
}

type branchRequest struct {
	Code    string     `json:"code" binding:"required,max=50"`
	Name    string     `json:"name" binding:"required,max=200"`
	CityID  *uuid.UUID `json:"city_id"`
	Address string     `json:"address" binding:"max=500"`
	Phone   string     `json:"phone" binding:"max=50"`
	Email   string     `json:"email" binding:"omitempty,email"`
}

func (r branchRequest) toInput() partner.BranchInput {
	return partner.BranchInput{
		Code: r.Code, Name: r.Name, CityID: r.CityID,
		Address: r.Address, Phone: r.Phone, Email: r.Email,
	}
}

// Create adds a branch
func (h *BranchHandler) Create(c *gin.Context) {
	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	branch, err := h.branchService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, branch)
}

// Update modifies a branch
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	branch, err := h.branchService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, branch)
}

// Activate re-enables a branch
func (h *BranchHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate disables a branch
func (h *BranchHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *BranchHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	branch, err := h.branchService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, branch)
}

// Delete removes a branch
func (h *BranchHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.branchService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
