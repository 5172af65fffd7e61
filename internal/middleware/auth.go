// auth.go
//
// Family photo sharing backend for kids' memories.

package middleware

import (
	"strings"

	"github.com/NgocTV11/kids-memories-backend/internal/config"
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in access tokens. The core trusts this identity and never
// re-verifies it against the users table on the hot path.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Protected validates the bearer token and stores {userID, userRole} in the
// request context for handlers.
func Protected(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return types.Unauthorized("Missing bearer token")
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return types.Unauthorized("Invalid or expired token")
		}

		c.Locals("userID", claims.Subject)
		c.Locals("userRole", claims.Role)

		return c.Next()
	}
}

// AdminOnly requires the admin role set by Protected. Role matching is plain
// string equality; there is no hierarchy.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		if role != models.RoleAdmin {
			return types.Forbidden("Admin access required")
		}
		return c.Next()
	}
}
