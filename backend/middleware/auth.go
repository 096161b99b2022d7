package middleware

import (
	"github.com/gofiber/fiber/v2"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"
)

// AuthMiddleware rejects requests without a valid token and stashes the
// caller's id and role in the request context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// AdminMiddleware requires the admin role.
func AdminMiddleware(cfg *config.Config) fiber.Handler {
	return requireRole(cfg, models.RoleAdmin)
}

// StaffMiddleware allows admins and instructors.
func StaffMiddleware(cfg *config.Config) fiber.Handler {
	return requireRole(cfg, models.RoleAdmin, models.RoleInstructor)
}

func requireRole(cfg *config.Config, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, r := range roles {
			if role == r {
				c.Locals("userID", userID)
				c.Locals("role", role)
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Insufficient permissions")
	}
}

// UserID returns the authenticated user id stored by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
