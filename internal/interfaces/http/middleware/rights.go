package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/jubilee-retail/backoffice/internal/application/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// MenuRights guards a route group with the menu-rights model. The
// resource is the menu URL the group is registered under; the required
// right follows from the HTTP verb. Runs after the JWT middleware.
func MenuRights(menuService *appidentity.MenuService, resource string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication is required"))
			return
		}

		roleID, err := uuid.Parse(claims.RoleID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "No role assigned"))
			return
		}

		right, found, err := menuService.RightsForRoute(c.Request.Context(), roleID, resource)
		if err != nil {
			logger.Error("Rights lookup failed",
				zap.String("resource", resource),
				zap.String("role_id", claims.RoleID),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "Could not verify access rights"))
			return
		}

		action := identity.RightForMethod(c.Request.Method)
		if !found || !right.HasRight(action) {
			menuName := resource
			if found {
				menuName = right.Name
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden,
					fmt.Sprintf("You do not have %s rights on %s", action, menuName)))
			return
		}
		c.Next()
	}
}
