package routers

import (
	"coursebuilder/config"
	controllers "coursebuilder/controllers/course"
	"coursebuilder/logger"
	"coursebuilder/middleware"
	courseRoutes "coursebuilder/routers/courseRoutes"
	courseService "coursebuilder/services/course"
	"coursebuilder/session"
	"coursebuilder/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP app is built from
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Sessions session.Provider
	Logger   logger.Logger
}

// NewApp builds the fiber app with middleware and every route mounted
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "coursebuilder",
		ErrorHandler: middleware.ErrorHandler(d.Logger),
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CorsAllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization,Cookie",
		AllowCredentials: d.Config.CorsAllowOrigins != "*",
	}))

	// Enable the built-in logger middleware to log all requests
	if d.Config.AccessLog {
		app.Use(fiberLogger.New(fiberLogger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	svc := courseService.NewService(store.New(d.DB))
	ctl := controllers.New(svc, d.Logger)

	app.Get("/healthz", ctl.Health)
	courseRoutes.SetupCourseRoutes(app, middleware.RequireSession(d.Sessions, d.Logger), ctl)

	return app
}
