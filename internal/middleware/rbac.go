package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/utils"
)

// RequireRole ensures that the authenticated user possesses one of the allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		for _, role := range rolesFromLocals(c) {
			if _, ok := allowed[strings.ToLower(role)]; ok {
				return c.Next()
			}
		}
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}
}

func rolesFromLocals(c *fiber.Ctx) []string {
	value := c.Locals("user_roles")
	if value == nil {
		return nil
	}
	if roles, ok := value.([]string); ok {
		return roles
	}
	if role, ok := value.(string); ok && role != "" {
		return []string{role}
	}
	return nil
}
