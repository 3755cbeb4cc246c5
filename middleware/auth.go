package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Manish34474/TradeNest/models"
)

const (
	ctxUserIDKey = "user_id"
	ctxRolesKey  = "roles"
)

// ValidateToken checks the bearer token and stores the authenticated identity
// (user id + role set) on the context. Token issuance lives outside this
// service; only HMAC validation happens here.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
		c.Abort()
		return
	}

	userID, ok := claims[ctxUserIDKey].(float64)
	if !ok || userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
		c.Abort()
		return
	}

	// A token with no recognizable roles stays role-less; RequireRole will
	// refuse it. Granting a fallback role here would widen access for
	// malformed tokens.
	var roles []models.Role
	if raw, ok := claims[ctxRolesKey].([]interface{}); ok {
		for _, entry := range raw {
			if s, ok := entry.(string); ok {
				if r, ok := models.ParseRole(s); ok {
					roles = append(roles, r)
				}
			}
		}
	}

	c.Set(ctxUserIDKey, uint(userID))
	c.Set(ctxRolesKey, roles)
	c.Next()
}

// RequireRole gates a route group to callers holding at least one of the
// given roles.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := CurrentRoles(c)
		for _, have := range roles {
			for _, want := range allowed {
				if have == want {
					c.Next()
					return
				}
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		c.Abort()
	}
}

// CurrentUserID returns the authenticated user id set by ValidateToken.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// CurrentRoles returns the authenticated role set, empty when unauthenticated.
func CurrentRoles(c *gin.Context) []models.Role {
	val, exists := c.Get(ctxRolesKey)
	if !exists {
		return nil
	}
	roles, _ := val.([]models.Role)
	return roles
}

// HasRole reports whether the caller carries the given role.
func HasRole(c *gin.Context, role models.Role) bool {
	for _, r := range CurrentRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}
