package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/application/table"
	"github.com/jubilee-retail/backoffice/internal/application/trade"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// OrderHandler serves the policy order lifecycle
type OrderHandler struct {
	BaseHandler
	orderService *trade.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *trade.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{BaseHandler: NewBaseHandler(logger), orderService: orderService}
}

// RegisterRoutes mounts the order endpoints
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("", h.Create)
		orders.POST("/:id/approve", h.Approve)
		orders.POST("/:id/issue", h.Issue)
		orders.POST("/:id/ship", h.Ship)
		orders.POST("/:id/deliver", h.Deliver)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

func orderColumns() []table.Column[trade.OrderDTO] {
	return []table.Column[trade.OrderDTO]{
		{Key: "order_no", Title: "Order No", Visible: true, Value: func(o trade.OrderDTO) string { return o.OrderNo }},
		{Key: "policy_no", Title: "Policy No", Visible: true, Value: func(o trade.OrderDTO) string { return o.PolicyNo }},
		{Key: "status", Title: "Status", Visible: true, Options: []string{"pending", "approved", "issued", "delivered", "cancelled"}, Value: func(o trade.OrderDTO) string { return o.Status }},
		{Key: "premium", Title: "Premium", Visible: true, Value: func(o trade.OrderDTO) string { return o.Premium.String() }},
		{Key: "discount", Title: "Discount", Visible: true, Value: func(o trade.OrderDTO) string { return o.Discount.String() }},
		{Key: "total", Title: "Total", Visible: true, Value: func(o trade.OrderDTO) string { return o.Total.String() }},
		{Key: "tracking_no", Title: "Tracking No", Visible: true, Value: func(o trade.OrderDTO) string { return o.TrackingNo }},
		{Key: "created_at", Title: "Created", Visible: true, Value: func(o trade.OrderDTO) string { return o.CreatedAt.Format(time.RFC3339) }},
	}
}

type listOrdersRequest struct {
	dto.ListRequest
	Status   string `form:"status"`
	ClientID string `form:"client_id"`
	AgentID  string `form:"agent_id"`
	From     string `form:"from"`
	To       string `form:"to"`
}

func (h *OrderHandler) parseListInput(c *gin.Context, req listOrdersRequest) (trade.ListOrdersInput, bool) {
	input := trade.ListOrdersInput{Status: req.Status}
	if req.ClientID != "" {
		id, err := uuid.Parse(req.ClientID)
		if err != nil {
			h.BadRequest(c, dto.ErrCodeInvalidID, "The client_id parameter must be a valid UUID")
			return input, false
		}
		input.ClientID = &id
	}
	if req.AgentID != "" {
		id, err := uuid.Parse(req.AgentID)
		if err != nil {
			h.BadRequest(c, dto.ErrCodeInvalidID, "The agent_id parameter must be a valid UUID")
			return input, false
		}
		input.AgentID = &id
	}
	if req.From != "" {
		from, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			h.BadRequest(c, dto.ErrCodeInvalidRequest, "The from parameter must be formatted as YYYY-MM-DD")
			return input, false
		}
		input.From = &from
	}
	if req.To != "" {
		to, err := time.Parse("2006-01-02", req.To)
		if err != nil {
			h.BadRequest(c, dto.ErrCodeInvalidRequest, "The to parameter must be formatted as YYYY-MM-DD")
			return input, false
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		input.To = &end
	}
	return input, true
}

// List returns a page of orders matching the query, or the current
// view as a file when export=csv|xlsx is requested.
func (h *OrderHandler) List(c *gin.Context) {
	var req listOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()
	input, ok := h.parseListInput(c, req)
	if !ok {
		return
	}

	format, requested, ok := exportRequested(&h.BaseHandler, c)
	if !ok {
		return
	}
	if requested {
		rows, err := h.orderService.ListAll(c.Request.Context(), input)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "orders", orderColumns(), rows, filter, format)
		return
	}

	page, err := h.orderService.List(c.Request.Context(), input, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get returns one order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

type createOrderRequest struct {
	ClientID   uuid.UUID `json:"client_id" binding:"required"`
	PlanID     uuid.UUID `json:"plan_id" binding:"required"`
	AgentID    uuid.UUID `json:"agent_id" binding:"required"`
	CouponCode string    `json:"coupon_code" binding:"max=50"`
}

// Create records a policy sale. The premium comes from the plan and
// the order starts in pending state.
func (h *OrderHandler) Create(c *gin.Context) {
	createdBy, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), trade.CreateOrderInput{
		ClientID:   req.ClientID,
		PlanID:     req.PlanID,
		AgentID:    req.AgentID,
		CouponCode: req.CouponCode,
	}, createdBy)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// Approve moves a pending order to approved
func (h *OrderHandler) Approve(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	order, err := h.orderService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Issue moves an approved order to issued and assigns the policy number
func (h *OrderHandler) Issue(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	order, err := h.orderService.Issue(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

type shipOrderRequest struct {
	CourierID  uuid.UUID `json:"courier_id" binding:"required"`
	TrackingNo string    `json:"tracking_no" binding:"required,max=100"`
}

// Ship records courier and consignment details on an issued order
func (h *OrderHandler) Ship(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req shipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	order, err := h.orderService.Ship(c.Request.Context(), id, trade.ShipOrderInput{
		CourierID:  req.CourierID,
		TrackingNo: req.TrackingNo,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Deliver moves an issued order to delivered
func (h *OrderHandler) Deliver(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	order, err := h.orderService.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

type cancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// Cancel terminates an order with a reason. Delivered orders cannot be
// cancelled.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	order, err := h.orderService.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}
