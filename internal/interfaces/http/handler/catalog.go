package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/application/catalog"
	"github.com/jubilee-retail/backoffice/internal/application/table"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogHandler serves product and plan administration
type CatalogHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(productService *catalog.ProductService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{BaseHandler: NewBaseHandler(logger), productService: productService}
}

// RegisterRoutes mounts the product and plan endpoints
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterProductRoutes(rg)
	h.RegisterPlanRoutes(rg)
}

// RegisterProductRoutes mounts the product endpoints
func (h *CatalogHandler) RegisterProductRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.POST("/:id/activate", h.ActivateProduct)
		products.POST("/:id/deactivate", h.DeactivateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// RegisterPlanRoutes mounts the plan endpoints
func (h *CatalogHandler) RegisterPlanRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.GET("/:id", h.GetPlan)
		plans.POST("", h.CreatePlan)
		plans.PUT("/:id", h.UpdatePlan)
		plans.POST("/:id/activate", h.ActivatePlan)
		plans.POST("/:id/deactivate", h.DeactivatePlan)
		plans.DELETE("/:id", h.DeletePlan)
	}
}

func productColumns() []table.Column[catalog.ProductDTO] {
	return []table.Column[catalog.ProductDTO]{
		{Key: "code", Title: "Code", Visible: true, Value: func(p catalog.ProductDTO) string { return p.Code }},
		{Key: "name", Title: "Name", Visible: true, Value: func(p catalog.ProductDTO) string { return p.Name }},
		{Key: "category", Title: "Category", Visible: true, Options: []string{"health", "motor", "travel", "life", "home"}, Value: func(p catalog.ProductDTO) string { return p.Category }},
		{Key: "is_active", Title: "Active", Visible: true, Options: []string{"true", "false"}, Value: func(p catalog.ProductDTO) string { return strconv.FormatBool(p.IsActive) }},
		{Key: "created_at", Title: "Created", Visible: true, Value: func(p catalog.ProductDTO) string { return p.CreatedAt.Format(time.RFC3339) }},
	}
}

// ListProducts returns a page of products, or the current view as a
// file when export=csv|xlsx is requested.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
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
		rows, err := h.productService.ListAllProducts(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "products", productColumns(), rows, filter, format)
		return
	}

	page, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// GetProduct returns one product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

type productRequest struct {
	Code        string `json:"code" binding:"required,max=50"`
	Name        string `json:"name" binding:"required,max=200"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"max=2000"`
}

func (r productRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{Code: r.Code, Name: r.Name, Category: r.Category, Description: r.Description}
}

// CreateProduct adds a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProduct modifies a product
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// ActivateProduct re-enables a product
func (h *CatalogHandler) ActivateProduct(c *gin.Context) {
	h.setProductActive(c, true)
}

// DeactivateProduct disables a product
func (h *CatalogHandler) DeactivateProduct(c *gin.Context) {
	h.setProductActive(c, false)
}

func (h *CatalogHandler) setProductActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	product, err := h.productService.SetProductActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct removes a product
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func planColumns() []table.Column[catalog.PlanDTO] {
	return []table.Column[catalog.PlanDTO]{
		{Key: "code", Title: "Code", Visible: true, Value: func(p catalog.PlanDTO) string { return p.Code }},
		{Key: "name", Title: "Name", Visible: true, Value: func(p catalog.PlanDTO) string { return p.Name }},
		{Key: "premium", Title: "Premium", Visible: true, Value: func(p catalog.PlanDTO) string { return p.Premium.String() }},
		{Key: "cover_amount", Title: "Cover", Visible: true, Value: func(p catalog.PlanDTO) string { return p.CoverAmount.String() }},
		{Key: "duration_months", Title: "Duration (months)", Visible: true, Value: func(p catalog.PlanDTO) string { return strconv.Itoa(p.DurationMonths) }},
		{Key: "is_active", Title: "Active", Visible: true, Options: []string{"true", "false"}, Value: func(p catalog.PlanDTO) string { return strconv.FormatBool(p.IsActive) }},
	}
}

// ListPlans returns a page of plans, optionally scoped to one product
// via ?product_id=, or the current view as a file when export=csv|xlsx
// is requested.
func (h *CatalogHandler) ListPlans(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, dto.ErrCodeInvalidID, "The product_id parameter must be a valid UUID")
			return
		}
		productID = &id
	}

	format, requested, ok := exportRequested(&h.BaseHandler, c)
	if !ok {
		return
	}
	if requested {
		rows, err := h.productService.ListAllPlans(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "plans", planColumns(), rows, filter, format)
		return
	}

	page, err := h.productService.ListPlans(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// GetPlan returns one plan
func (h *CatalogHandler) GetPlan(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	plan, err := h.productService.GetPlan(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, plan)
}

type planRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	Code           string          `json:"code" binding:"required,max=50"`
	Name           string          `json:"name" binding:"required,max=200"`
	Premium        decimal.Decimal `json:"premium" binding:"required"`
	CoverAmount    decimal.Decimal `json:"cover_amount"`
	DurationMonths int             `json:"duration_months" binding:"omitempty,min=1,max=120"`
}

func (r planRequest) toInput() catalog.PlanInput {
	return catalog.PlanInput{
		ProductID: r.ProductID, Code: r.Code, Name: r.Name,
		Premium: r.Premium, CoverAmount: r.CoverAmount, DurationMonths: r.DurationMonths,
	}
}

// CreatePlan adds a plan under a product
func (h *CatalogHandler) CreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	plan, err := h.productService.CreatePlan(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, plan)
}

// UpdatePlan modifies a plan
func (h *CatalogHandler) UpdatePlan(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	plan, err := h.productService.UpdatePlan(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, plan)
}

// ActivatePlan re-enables a plan
func (h *CatalogHandler) ActivatePlan(c *gin.Context) {
	h.setPlanActive(c, true)
}

// DeactivatePlan disables a plan
func (h *CatalogHandler) DeactivatePlan(c *gin.Context) {
	h.setPlanActive(c, false)
}

func (h *CatalogHandler) setPlanActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	plan, err := h.productService.SetPlanActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, plan)
}

// DeletePlan removes a plan
func (h *CatalogHandler) DeletePlan(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.productService.DeletePlan(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
