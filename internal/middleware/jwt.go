package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/utils"
)

// JWTProtected returns a middleware that validates JWT bearer tokens issued
// by the auth service and exposes the caller's identity via locals.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		info := userInfoFromClaims(claims)
		if info.ID != 0 {
			c.Locals("user_id", info.ID)
		}
		if info.Email != "" {
			c.Locals("user_email", info.Email)
		}
		if len(info.Roles) > 0 {
			c.Locals("user_roles", info.Roles)
		}

		return c.Next()
	}
}

// UserInfo is the identity payload embedded in access tokens.
type UserInfo struct {
	ID        uint
	Email     string
	FirstName string
	LastName  string
	Roles     []string
}

func userInfoFromClaims(claims jwt.MapClaims) UserInfo {
	info := UserInfo{}

	raw, ok := claims["UserInfo"].(map[string]interface{})
	if !ok {
		return info
	}

	if id, ok := raw["id"].(float64); ok && id >= 0 {
		info.ID = uint(id)
	}
	if email, ok := raw["email"].(string); ok {
		info.Email = email
	}
	if first, ok := raw["firstName"].(string); ok {
		info.FirstName = first
	}
	if last, ok := raw["lastName"].(string); ok {
		info.LastName = last
	}
	if roles, ok := raw["roles"].([]interface{}); ok {
		for _, role := range roles {
			if value, ok := role.(string); ok && value != "" {
				info.Roles = append(info.Roles, value)
			}
		}
	}

	return info
}
