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

// ClientHandler serves policyholder administration
type ClientHandler struct {
	BaseHandler
	clientService *partner.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *partner.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{BaseHandler: NewBaseHandler(logger), clientService: clientService}
}

// RegisterRoutes mounts the client endpoints
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.GET("", h.List)
		clients.GET("/:id", h.Get)
		clients.POST("", h.Create)
		clients.PUT("/:id", h.Update)
		clients.POST("/:id/activate", h.Activate)
		clients.POST("/:id/deactivate", h.Deactivate)
		clients.DELETE("/:id", h.Delete)
	}
}

func clientColumns() []table.Column[partner.ClientDTO] {
	return []table.Column[partner.ClientDTO]{
		{Key: "name", Title: "Name", Visible: true, Value: func(cl partner.ClientDTO) string { return cl.Name }},
		{Key: "document_no", Title: "Document No", Visible: true, Value: func(cl partner.ClientDTO) string { return cl.DocumentNo }},
		{Key: "email", Title: "Email", Visible: true, Value: func(cl partner.ClientDTO) string { return cl.Email }},
		{Key: "phone", Title: "Phone", Visible: true, Value: func(cl partner.ClientDTO) string { return cl.Phone }},
		{Key: "is_active", Title: "Active", Visible: true, Options: []string{"true", "false"}, Value: func(cl partner.ClientDTO) string { return strconv.FormatBool(cl.IsActive) }},
		{Key: "created_at", Title: "Created", Visible: true, Value: func(cl partner.ClientDTO) string { return cl.CreatedAt.Format(time.RFC3339) }},
	}
}

// List returns a page of policyholders, or the current view as a file
// when export=csv|xlsx is requested.
func (h *ClientHandler) List(c *gin.Context) {
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
		rows, err := h.clientService.ListAll(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "clients", clientColumns(), rows, filter, format)
		return
	}

	page, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get returns one policyholder
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

type clientRequest struct {
	Name        string     `json:"name" binding:"required,max=200"`
	DocumentNo  string     `json:"document_no" binding:"required,max=50"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Phone       string     `json:"phone" binding:"max=50"`
	CityID      *uuid.UUID `json:"city_id"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address" binding:"max=500"`
}

func (r clientRequest) toInput() partner.ClientInput {
	return partner.ClientInput{
		Name: r.Name, DocumentNo: r.DocumentNo, Email: r.Email, Phone: r.Phone,
		CityID: r.CityID, DateOfBirth: r.DateOfBirth, Address: r.Address,
	}
}

// Create adds a policyholder
func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	client, err := h.clientService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, client)
}

// Update modifies a policyholder
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	client, err := h.clientService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// Activate re-enables a policyholder
func (h *ClientHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate disables a policyholder
func (h *ClientHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ClientHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	client, err := h.clientService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// Delete removes a policyholder
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
