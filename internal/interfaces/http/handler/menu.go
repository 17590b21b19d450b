package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/jubilee-retail/backoffice/internal/application/identity"
	"go.uber.org/zap"
)

// MenuHandler serves menu administration and role grant management
type MenuHandler struct {
	BaseHandler
	menuService *appidentity.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *appidentity.MenuService, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{BaseHandler: NewBaseHandler(logger), menuService: menuService}
}

// RegisterRoutes mounts the menu endpoints
func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	menus := rg.Group("/menus")
	{
		menus.GET("", h.List)
		menus.POST("", h.Create)
		menus.PUT("/:id", h.Update)
		menus.DELETE("/:id", h.Delete)
	}
	rg.PUT("/roles/:id/menus", h.ReplaceGrants)
}

// List returns every menu entry, active or not
func (h *MenuHandler) List(c *gin.Context) {
	menus, err := h.menuService.ListMenus(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, menus)
}

type menuRequest struct {
	Name      string     `json:"name" binding:"required,max=100"`
	URL       string     `json:"url" binding:"required,max=200"`
	Icon      string     `json:"icon" binding:"max=100"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder int        `json:"sort_order"`
}

func (r menuRequest) toInput() appidentity.MenuInput {
	return appidentity.MenuInput{
		Name:      r.Name,
		URL:       r.URL,
		Icon:      r.Icon,
		ParentID:  r.ParentID,
		SortOrder: r.SortOrder,
	}
}

// Create adds a menu entry
func (h *MenuHandler) Create(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	menu, err := h.menuService.CreateMenu(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, menu)
}

// Update modifies a menu entry
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	menu, err := h.menuService.UpdateMenu(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, menu)
}

// Delete removes a menu entry
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.menuService.DeleteMenu(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

type replaceGrantsRequest struct {
	Grants []appidentity.GrantInput `json:"grants" binding:"required"`
}

// ReplaceGrants replaces a role's menu rights wholesale. Sessions pick
// up the change on their next rights check.
func (h *MenuHandler) ReplaceGrants(c *gin.Context) {
	roleID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req replaceGrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if err := h.menuService.ReplaceGrants(c.Request.Context(), roleID, req.Grants); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": true})
}
