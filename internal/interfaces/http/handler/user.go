package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/jubilee-retail/backoffice/internal/application/identity"
	"github.com/jubilee-retail/backoffice/internal/application/table"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// UserHandler serves staff account administration
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{BaseHandler: NewBaseHandler(logger), userService: userService}
}

// RegisterRoutes mounts the user endpoints
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.POST("", h.Create)
		users.PUT("/:id", h.Update)
		users.POST("/:id/reset-password", h.ResetPassword)
		users.POST("/:id/activate", h.Activate)
		users.POST("/:id/deactivate", h.Deactivate)
		users.DELETE("/:id", h.Delete)
	}
}

func userColumns() []table.Column[appidentity.UserDTO] {
	return []table.Column[appidentity.UserDTO]{
		{Key: "username", Title: "Username", Visible: true, Value: func(u appidentity.UserDTO) string { return u.Username }},
		{Key: "email", Title: "Email", Visible: true, Value: func(u appidentity.UserDTO) string { return u.Email }},
		{Key: "full_name", Title: "Full Name", Visible: true, Value: func(u appidentity.UserDTO) string { return u.FullName }},
		{Key: "phone", Title: "Phone", Visible: true, Value: func(u appidentity.UserDTO) string { return u.Phone }},
		{Key: "status", Title: "Status", Visible: true, Options: []string{"active", "inactive", "locked"}, Value: func(u appidentity.UserDTO) string { return u.Status }},
		{Key: "created_at", Title: "Created", Visible: true, Value: func(u appidentity.UserDTO) string { return u.CreatedAt.Format(time.RFC3339) }},
	}
}

// List returns a page of staff accounts, or the current view as a file
// when export=csv|xlsx is requested.
func (h *UserHandler) List(c *gin.Context) {
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
		rows, err := h.userService.ListAll(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "users", userColumns(), rows, filter, format)
		return
	}

	page, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get returns one staff account
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

type createUserRequest struct {
	Username string     `json:"username" binding:"required,min=3,max=50"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	Phone    string     `json:"phone" binding:"max=50"`
	FullName string     `json:"full_name" binding:"max=200"`
	RoleID   uuid.UUID  `json:"role_id" binding:"required"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// Create adds a staff account
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	user, err := h.userService.Create(c.Request.Context(), appidentity.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		FullName: req.FullName,
		RoleID:   req.RoleID,
		BranchID: req.BranchID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, user)
}

type updateUserRequest struct {
	Email    *string    `json:"email" binding:"omitempty,email"`
	Phone    *string    `json:"phone" binding:"omitempty,max=50"`
	FullName *string    `json:"full_name" binding:"omitempty,max=200"`
	Image    *string    `json:"image" binding:"omitempty,max=500"`
	RoleID   *uuid.UUID `json:"role_id"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// Update applies the provided fields to a staff account
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	user, err := h.userService.Update(c.Request.Context(), id, appidentity.UpdateUserInput{
		Email:    req.Email,
		Phone:    req.Phone,
		FullName: req.FullName,
		Image:    req.Image,
		RoleID:   req.RoleID,
		BranchID: req.BranchID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword sets a new password for an account without the old one
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if err := h.userService.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"reset": true})
}

// Activate re-enables a staff account
func (h *UserHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate disables a staff account
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *UserHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	user, err := h.userService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete removes a staff account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
