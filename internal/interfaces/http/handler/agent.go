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

// AgentHandler serves selling agent administration
type AgentHandler struct {
	BaseHandler
	agentService *partner.AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService *partner.AgentService, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{BaseHandler: NewBaseHandler(logger), agentService: agentService}
}

// RegisterRoutes mounts the agent endpoints
func (h *AgentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	agents := rg.Group("/agents")
	{
		agents.GET("", h.List)
		agents.GET("/:id", h.Get)
		agents.POST("", h.Create)
		agents.PUT("/:id", h.Update)
		agents.POST("/:id/activate", h.Activate)
		agents.POST("/:id/deactivate", h.Deactivate)
		agents.DELETE("/:id", h.Delete)
	}
}

func agentColumns() []table.Column[partner.AgentDTO] {
	return []table.Column[partner.AgentDTO]{
		{Key: "code", Title: "Code", Visible: true, Value: func(a partner.AgentDTO) string { return a.Code }},
		{Key: "name", Title: "Name", Visible: true, Value: func(a partner.AgentDTO) string { return a.Name }},
		{Key: "email", Title: "Email", Visible: true, Value: func(a partner.AgentDTO) string { return a.Email }},
		{Key: "phone", Title: "Phone", Visible: true, Value: func(a partner.AgentDTO) string { return a.Phone }},
		{Key: "is_active", Title: "Active", Visible: true, Options: []string{"true", "false"}, Value: func(a partner.AgentDTO) string { return strconv.FormatBool(a.IsActive) }},
		{Key: "created_at", Title: "Created", Visible: true, Value: func(a partner.AgentDTO) string { return a.CreatedAt.Format(time.RFC3339) }},
	}
}

// List returns a page of agents, or the current view as a file when
// export=csv|xlsx is requested.
func (h *AgentHandler) List(c *gin.Context) {
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
		rows, err := h.agentService.ListAll(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "agents", agentColumns(), rows, filter, format)
		return
	}

	page, err := h.agentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get returns one agent
func (h *AgentHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	agent, err := h.agentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, agent)
}

type agentRequest struct {
	Code     string    `json:"code" binding:"required,max=50"`
	Name     string    `json:"name" binding:"required,max=200"`
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Email    string    `json:"email" binding:"omitempty,email"`
	Phone    string    `json:"phone" binding:"max=50"`
}

func (r agentRequest) toInput() partner.AgentInput {
	return partner.AgentInput{
		Code: r.Code, Name: r.Name, BranchID: r.BranchID,
		Email: r.Email, Phone: r.Phone,
	}
}

// Create adds an agent
func (h *AgentHandler) Create(c *gin.Context) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	agent, err := h.agentService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, agent)
}

// Update modifies an agent
func (h *AgentHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	agent, err := h.agentService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, agent)
}

// Activate re-enables an agent
func (h *AgentHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate disables an agent
func (h *AgentHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *AgentHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	agent, err := h.agentService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, agent)
}

// Delete removes an agent
func (h *AgentHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.agentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
