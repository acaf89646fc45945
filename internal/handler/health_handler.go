package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/config"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
}

// HealthCheck returns a handler that reports application liveness.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}

// ReadyCheck returns a handler that verifies the database and cache are reachable.
// The redis client may be nil when caching is disabled.
func ReadyCheck(db *gorm.DB, cache *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		checks := fiber.Map{"database": "ok", "cache": "ok"}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Context())
		}
		if err != nil {
			checks["database"] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(utils.APIResponse{
				Success: false,
				Message: "service not ready",
				Data:    checks,
			})
		}

		if cache == nil {
			checks["cache"] = "disabled"
		} else if err := cache.Ping(c.Context()).Err(); err != nil {
			checks["cache"] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(utils.APIResponse{
				Success: false,
				Message: "service not ready",
				Data:    checks,
			})
		}

		return utils.SendSuccess(c, "service ready", checks)
	}
}
