package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirnik55/building-app/controllers"
	"github.com/kirnik55/building-app/internal/util"
	"github.com/kirnik55/building-app/middleware"
)

func SetupRoutes(app *fiber.App, cfg util.Config) {
	controllers.Init(cfg)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/api/auth/login", controllers.Login)
	app.Post("/api/auth/token/refresh", controllers.Refresh)

	// Protect routes with middleware
	auth := middleware.JwtAuthMiddleware(cfg.AccessTokenSecret)

	app.Get("/api/auth/me", auth, controllers.Me)
	app.Get("/api/auth/users", auth, controllers.ListUsers)
	app.Post("/api/auth/users", auth, controllers.CreateUser)
	app.Delete("/api/auth/users/:id", auth, controllers.DeleteUser)

	app.Get("/api/projects", auth, controllers.ListProjects)
	app.Post("/api/projects", auth, controllers.CreateProject)
	app.Get("/api/projects/:id", auth, controllers.GetProject)
	app.Delete("/api/projects/:id", auth, controllers.DeleteProject)

	// the resolved view must be registered before the :id routes
	app.Get("/api/defects/resolved", auth, controllers.ResolvedDefects)
	app.Get("/api/defects", auth, controllers.ListDefects)
	app.Post("/api/defects", auth, controllers.CreateDefect)
	app.Get("/api/defects/:id", auth, controllers.GetDefect)
	app.Patch("/api/defects/:id", auth, controllers.UpdateDefect)
	app.Delete("/api/defects/:id", auth, controllers.DeleteDefect)
	app.Patch("/api/defects/:id/assign", auth, controllers.AssignDefect)

	app.Get("/api/comments", auth, controllers.ListComments)
	app.Post("/api/comments", auth, controllers.CreateComment)

	app.Get("/api/attachments", auth, controllers.ListAttachments)
	app.Post("/api/attachments", auth, controllers.CreateAttachment)
	app.Delete("/api/attachments/:id", auth, controllers.DeleteAttachment)

	app.Get("/api/reports/summary", auth, controllers.ReportsSummary)
}
