package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/auth"
	"github.com/opencampus/profile-service/pkg/logger"
)

const ginContextKeyPrincipal = "principal"

func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED", "message": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED", "message": "Invalid token format"})
			return
		}

		principal, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED", "message": "Invalid or expired token"})
			return
		}

		c.Set(ginContextKeyPrincipal, principal)

		c.Next()
	}
}

// RequireRoles gates an endpoint to callers whose role set intersects the
// required one. Runs after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipalFromGinContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED", "message": "Missing authentication"})
			return
		}
		if !principal.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "FORBIDDEN", "message": "Insufficient role"})
			return
		}
		c.Next()
	}
}

// ErrorMiddleware translates errors attached by handlers into the JSON
// error envelope. Only the first error is reported.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors[0].Err
		status := apperror.ToHTTPStatus(err)

		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, zap.String("path", c.FullPath()))
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.AbortWithStatusJSON(status, appErr.ToJSON())
			return
		}
		c.AbortWithStatusJSON(status, gin.H{"error": apperror.ToCode(err), "message": err.Error()})
	}
}

func GetPrincipalFromGinContext(c *gin.Context) (*auth.Principal, bool) {
	v, ok := c.Get(ginContextKeyPrincipal)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*auth.Principal)
	return principal, ok
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		return uuid.Nil, false
	}
	return principal.UserID, true
}
