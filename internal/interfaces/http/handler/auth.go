package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appidentity "github.com/jubilee-retail/backoffice/internal/application/identity"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// pendingReferenceHeader carries the pending login reference between
// the credential step and OTP verification
const pendingReferenceHeader = "X-Pending-Reference"

// AuthHandler serves the three-step login flow and session endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	userService *appidentity.UserService
	menuService *appidentity.MenuService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService, userService *appidentity.UserService, menuService *appidentity.MenuService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		userService: userService,
		menuService: menuService,
	}
}

// RegisterRoutes mounts the auth endpoints
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/otp/send", h.SendOtp)
		auth.POST("/otp/verify", h.VerifyOtp)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/change-password", h.ChangePassword)
		auth.GET("/me", h.Me)
		auth.GET("/menus", h.Menus)
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and opens a pending login. No token is
// issued until the OTP is verified.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		Username: req.Username,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

type sendOtpRequest struct {
	Reference string `json:"reference"`
	Channel   string `json:"channel" binding:"required,oneof=email sms"`
}

// SendOtp dispatches a verification code for a pending login. The
// reference comes from the X-Pending-Reference header or the body.
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req sendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	reference, ok := h.pendingReference(c, req.Reference)
	if !ok {
		return
	}

	err := h.authService.SendOtp(c.Request.Context(), appidentity.SendOtpInput{
		Reference: reference,
		Channel:   req.Channel,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"sent": true})
}

type verifyOtpRequest struct {
	Reference string `json:"reference"`
	Code      string `json:"code" binding:"required,len=6,numeric"`
}

// VerifyOtp completes the login flow and issues the token pair
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req verifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	reference, ok := h.pendingReference(c, req.Reference)
	if !ok {
		return
	}

	result, err := h.authService.VerifyOtp(c.Request.Context(), appidentity.VerifyOtpInput{
		Reference: reference,
		Code:      req.Code,
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *AuthHandler) pendingReference(c *gin.Context, bodyReference string) (string, bool) {
	reference := c.GetHeader(pendingReferenceHeader)
	if reference == "" {
		reference = bodyReference
	}
	if reference == "" {
		h.BadRequest(c, dto.ErrCodeInvalidRequest, "A pending login reference is required")
		return "", false
	}
	return reference, true
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates the token pair. The used refresh token is revoked.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, pair)
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication is required"))
		return
	}
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"logged_out": true})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword changes the caller's own password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"changed": true})
}

// Me returns the caller's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// Menus returns the caller's granted navigation tree
func (h *AuthHandler) Menus(c *gin.Context) {
	roleID, ok := h.CurrentRoleID(c)
	if !ok {
		return
	}
	menus, err := h.menuService.NavigationForRole(c.Request.Context(), roleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, menus)
}
