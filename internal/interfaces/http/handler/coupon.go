package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jubilee-retail/backoffice/internal/application/catalog"
	"github.com/jubilee-retail/backoffice/internal/application/table"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CouponHandler serves discount coupon administration
type CouponHandler struct {
	BaseHandler
	couponService *catalog.CouponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponService *catalog.CouponService, logger *zap.Logger) *CouponHandler {
	return &CouponHandler{BaseHandler: NewBaseHandler(logger), couponService: couponService}
}

// RegisterRoutes mounts the coupon endpoints
func (h *CouponHandler) RegisterRoutes(rg *gin.RouterGroup) {
	coupons := rg.Group("/coupons")
	{
		coupons.GET("", h.List)
		coupons.GET("/:id", h.Get)
		coupons.POST("", h.Create)
		coupons.PUT("/:id", h.Update)
		coupons.POST("/:id/activate", h.Activate)
		coupons.POST("/:id/deactivate", h.Deactivate)
		coupons.DELETE("/:id", h.Delete)
	}
}

func couponColumns() []table.Column[catalog.CouponDTO] {
	return []table.Column[catalog.CouponDTO]{
		{Key: "code", Title: "Code", Visible: true, Value: func(cp catalog.CouponDTO) string { return cp.Code }},
		{Key: "type", Title: "Type", Visible: true, Options: []string{"percent", "fixed"}, Value: func(cp catalog.CouponDTO) string { return cp.Type }},
		{Key: "value", Title: "Value", Visible: true, Value: func(cp catalog.CouponDTO) string { return cp.Value.String() }},
		{Key: "valid_until", Title: "Valid Until", Visible: true, Value: func(cp catalog.CouponDTO) string { return cp.ValidUntil.Format(time.RFC3339) }},
		{Key: "redemptions", Title: "Redemptions", Visible: true, Value: func(cp catalog.CouponDTO) string { return strconv.Itoa(cp.Redemptions) }},
		{Key: "is_active", Title: "Active", Visible: true, Options: []string{"true", "false"}, Value: func(cp catalog.CouponDTO) string { return strconv.FormatBool(cp.IsActive) }},
	}
}

// List returns a page of coupons, or the current view as a file when
// export=csv|xlsx is requested.
func (h *CouponHandler) List(c *gin.Context) {
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
		rows, err := h.couponService.ListAll(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "coupons", couponColumns(), rows, filter, format)
		return
	}

	page, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get returns one coupon
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	coupon, err := h.couponService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, coupon)
}

type couponRequest struct {
	Code           string          `json:"code" binding:"required,max=50"`
	Type           string          `json:"type" binding:"required,oneof=percent fixed"`
	Value          decimal.Decimal `json:"value" binding:"required"`
	ValidFrom      time.Time       `json:"valid_from" binding:"required"`
	ValidUntil     time.Time       `json:"valid_until" binding:"required"`
	MaxRedemptions int             `json:"max_redemptions" binding:"min=0"`
}

func (r couponRequest) toInput() catalog.CouponInput {
	return catalog.CouponInput{
		Code: r.Code, Type: r.Type, Value: r.Value,
		ValidFrom: r.ValidFrom, ValidUntil: r.ValidUntil,
		MaxRedemptions: r.MaxRedemptions,
	}
}

// Create adds a coupon
func (h *CouponHandler) Create(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	coupon, err := h.couponService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, coupon)
}

// Update modifies a coupon
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	coupon, err := h.couponService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, coupon)
}

// Activate re-enables a coupon
func (h *CouponHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate disables a coupon
func (h *CouponHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *CouponHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	coupon, err := h.couponService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, coupon)
}

// Delete removes a coupon
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.couponService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
