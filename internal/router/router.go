package router

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/config"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/handler"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/middleware"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	StudentHandler    *handler.StudentHandler
	ClassHandler      *handler.ClassHandler
	SubjectHandler    *handler.SubjectHandler
	TimetableHandler  *handler.TimetableHandler
	AssessmentHandler *handler.AssessmentHandler
	AssignmentHandler *handler.AssignmentHandler
	AttendanceHandler *handler.AttendanceHandler
	EventHandler      *handler.EventHandler
	FeeHandler        *handler.FeeHandler
	SettingsHandler   *handler.SettingsHandler
	UploadHandler     *handler.UploadHandler
	ReadyCheck        fiber.Handler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	api.Get("/health", handler.HealthCheck(cfg))
	if deps.ReadyCheck != nil {
		api.Get("/ready", deps.ReadyCheck)
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	adminOnly := middleware.RequireRole(models.RoleAdmin)

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users", jwtMiddleware, adminOnly))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students", jwtMiddleware))
	}
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(api.Group("/classes", jwtMiddleware))
	}
	if deps.SubjectHandler != nil {
		deps.SubjectHandler.Register(api.Group("/subjects", jwtMiddleware))
	}
	if deps.TimetableHandler != nil {
		deps.TimetableHandler.Register(api.Group("/timetables", jwtMiddleware))
	}
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.Register(api.Group("/assessments", jwtMiddleware))
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api.Group("/assignments", jwtMiddleware))
	}
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(api.Group("/attendance", jwtMiddleware))
	}
	if deps.EventHandler != nil {
		deps.EventHandler.Register(api.Group("/events", jwtMiddleware))
	}
	if deps.FeeHandler != nil {
		deps.FeeHandler.Register(api.Group("/fees", jwtMiddleware))
	}
	if deps.SettingsHandler != nil {
		deps.SettingsHandler.Register(api.Group("/settings", jwtMiddleware, adminOnly))
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(api.Group("/uploads", jwtMiddleware))
	}
}
