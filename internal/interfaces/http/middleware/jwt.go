package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/auth"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys populated by the JWT middleware
const (
	ContextKeyClaims   = "auth_claims"
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyRoleID   = "auth_role_id"
)

// JWTConfig controls the authentication middleware
type JWTConfig struct {
	// SkipPaths are exact request paths that bypass authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that bypass authentication
	SkipPathPrefixes []string
}

// DefaultJWTConfig skips the health probe and the login flow, which
// runs before any token exists.
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/otp/send",
			"/api/v1/auth/otp/verify",
			"/api/v1/auth/refresh",
		},
	}
}

// JWT validates the bearer token, rejects blacklisted or invalidated
// tokens, and stores the claims on the request context.
func JWT(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, cfg JWTConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range cfg.SkipPaths {
			if path == p {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString, ok := extractBearerToken(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeTokenMissing, "Authorization token is required")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		if blacklist != nil {
			// Store failures fail open: a Redis outage must not lock every
			// user out, but it is always logged.
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Error("Token blacklist check failed",
					zap.String("jti", claims.ID), zap.Error(err))
			} else if revoked {
				abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
				return
			}

			if claims.IssuedAt != nil {
				invalidated, err := blacklist.IsUserTokenInvalidated(c.Request.Context(), claims.UserID, claims.IssuedAt.Time)
				if err != nil {
					logger.Error("User token invalidation check failed",
						zap.String("user_id", claims.UserID), zap.Error(err))
				} else if invalidated {
					abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
					return
				}
			}
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRoleID, claims.RoleID)
		c.Next()
	}
}

// GetClaims returns the validated claims stored by the JWT middleware
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
	case errors.Is(err, auth.ErrInvalidTokenType):
		abortUnauthorized(c, dto.ErrCodeTokenWrongType, "Wrong token type for this endpoint")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		abortUnauthorized(c, dto.ErrCodeTokenNotYetValid, "Token is not valid yet")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
	default:
		abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token is invalid")
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
