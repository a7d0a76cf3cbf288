package middleware

import (
	"net/http"
	"strings"

	"seatly/internal/shared/config"
	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Staff roles carried in token claims. There is no profile management
// here; tokens are issued by the identity subsystem and only validated.
const (
	RoleStaff   = "STAFF"
	RoleManager = "MANAGER"
)

// JWTAuth creates a JWT authentication middleware
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
				response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token type", nil, nil)
				c.Abort()
				return
			}
			c.Set("staff_id", claims["sub"])
			c.Set("staff_role", claims["role"])
		}

		c.Next()
	}
}

// RequireRole middleware checks if the staff member has the required role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffRole, exists := c.Get("staff_role")
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "staff role not found in context", nil, nil)
			c.Abort()
			return
		}

		role, _ := staffRole.(string)
		// Managers can do everything staff can
		if role != requiredRole && !(requiredRole == RoleStaff && role == RoleManager) {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireManager requires the MANAGER role (layout authoring, activation)
func RequireManager() gin.HandlerFunc {
	return RequireRole(RoleManager)
}

// StaffKeyAuth validates the X-Staff-Key header against the configured
// bcrypt hash. Used for service-to-service calls that carry no JWT.
func StaffKeyAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.JWT.StaffKeyHash == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "staff key auth not configured", nil, nil)
			c.Abort()
			return
		}

		key := c.GetHeader("X-Staff-Key")
		if key == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "X-Staff-Key header is required", nil, nil)
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.JWT.StaffKeyHash), []byte(key)); err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid staff key", nil, nil)
			c.Abort()
			return
		}

		c.Set("staff_id", "service")
		c.Set("staff_role", RoleStaff)
		c.Next()
	}
}
