package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/jubilee-retail/backoffice/internal/application/identity"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RoleHandler serves role administration
type RoleHandler struct {
	BaseHandler
	roleService *appidentity.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *appidentity.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{BaseHandler: NewBaseHandler(logger), roleService: roleService}
}

// RegisterRoutes mounts the role endpoints
func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")
	{
		roles.GET("", h.List)
		roles.GET("/:id", h.Get)
		roles.POST("", h.Create)
		roles.PUT("/:id", h.Update)
		roles.DELETE("/:id", h.Delete)
	}
}

// List returns a page of roles
func (h *RoleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	page, err := h.roleService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get returns one role
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	role, err := h.roleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, role)
}

type roleRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// Create adds a role
func (h *RoleHandler) Create(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	role, err := h.roleService.Create(c.Request.Context(), appidentity.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, role)
}

// Update renames a role or changes its description
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	role, err := h.roleService.Update(c.Request.Context(), id, appidentity.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, role)
}

// Delete removes a role
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
