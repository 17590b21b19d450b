package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides the shared response helpers every handler embeds
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler with the given logger
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success writes a 200 response with data in the success envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created writes a 201 response with data in the success envelope
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 response with the page items and meta
func Paginated[T any](h *BaseHandler, c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(page.Items, dto.PaginatedMeta(page)))
}

// BadRequest writes a 400 response with the given code and message
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(code, message))
}

// BindingError writes a 400 response for a failed request binding
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	h.logger.Debug("Request binding failed", zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeValidation, "Request validation failed: "+err.Error()))
}

// HandleDomainError maps a service error onto the envelope. Domain
// errors resolve through the code-to-status table; anything else is an
// internal error and the detail stays out of the response.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Domain error", zap.String("code", domainErr.Code), zap.Error(err))
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}
	h.logger.Error("Unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "An internal error occurred"))
}

// ParseIDParam reads and validates the :id path parameter
func (h *BaseHandler) ParseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidID, "The id parameter must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// CurrentUserID returns the authenticated user's ID from the claims
func (h *BaseHandler) CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication is required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeTokenInvalid, "Token subject is not valid"))
		return uuid.Nil, false
	}
	return id, true
}

// CurrentRoleID returns the authenticated user's role ID from the claims
func (h *BaseHandler) CurrentRoleID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication is required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.RoleID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeTokenInvalid, "Token role is not valid"))
		return uuid.Nil, false
	}
	return id, true
}
