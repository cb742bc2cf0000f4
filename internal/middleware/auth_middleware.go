package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware handles authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the bearer token and stores the caller's identity in the
// request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Swagger UI occasionally sends the token as a query parameter.
			authHeader = c.Query("authorization")
		}
		if authHeader == "" {
			body := dto.NewErrorResponse("Authentication required")
			body.Details = "Authorization header missing"
			c.AbortWithStatusJSON(http.StatusUnauthorized, body)
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			body := dto.NewErrorResponse("Authentication required")
			body.Details = "Invalid token format"
			c.AbortWithStatusJSON(http.StatusUnauthorized, body)
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			body := dto.NewErrorResponse("Authentication failed")
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				body.Details = "Token has expired"
			case errors.Is(err, auth.ErrInvalidFormat):
				body.Details = "Invalid token format"
			default:
				body.Details = "Invalid token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, body)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// WriteAccessRequired restricts mutating endpoints to administrators. Heads
// keep read access through JWTAuth alone.
func (m *AuthMiddleware) WriteAccessRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			body := dto.NewErrorResponse("Authentication required")
			body.Details = "User role not found"
			c.AbortWithStatusJSON(http.StatusUnauthorized, body)
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(models.RoleAdministrator) {
			body := dto.NewErrorResponse("Access denied")
			body.Details = "You don't have sufficient permissions for this operation"
			c.AbortWithStatusJSON(http.StatusForbidden, body)
			return
		}

		c.Next()
	}
}
