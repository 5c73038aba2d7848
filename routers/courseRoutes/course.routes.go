package courseRoutes

import (
	controllers "coursebuilder/controllers/course"
	validators "coursebuilder/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes mounts the course, module, lesson and dashboard routes.
// auth resolves the caller and runs before every handler.
func SetupCourseRoutes(app fiber.Router, auth fiber.Handler, ctl *controllers.Controller) {
	courseGroup := app.Group("/course", auth)
	courseGroup.Get("/", ctl.ListCourses)
	courseGroup.Post("/", validators.Course(), ctl.CreateCourse)
	courseGroup.Get("/:courseId", validators.EntityID("courseId"), ctl.GetCourse)
	courseGroup.Put("/:courseId", validators.EntityID("courseId"), validators.Course(), ctl.UpdateCourse)
	courseGroup.Delete("/:courseId", validators.EntityID("courseId"), ctl.DeleteCourse)

	moduleGroup := app.Group("/module", auth)
	moduleGroup.Get("/", ctl.ListModules)
	moduleGroup.Post("/", validators.CreateModules(), ctl.CreateModules)
	moduleGroup.Get("/:moduleId", validators.EntityID("moduleId"), ctl.GetModule)
	moduleGroup.Put("/:moduleId", validators.EntityID("moduleId"), validators.UpdateModule(), ctl.UpdateModule)
	moduleGroup.Delete("/:moduleId", validators.EntityID("moduleId"), ctl.DeleteModule)

	lessonGroup := app.Group("/lesson", auth)
	lessonGroup.Get("/", ctl.ListLessons)
	lessonGroup.Post("/", validators.CreateLessons(), ctl.CreateLessons)
	lessonGroup.Get("/:lessonId", validators.EntityID("lessonId"), ctl.GetLesson)
	lessonGroup.Put("/:lessonId", validators.EntityID("lessonId"), validators.UpdateLesson(), ctl.UpdateLesson)
	lessonGroup.Delete("/:lessonId", validators.EntityID("lessonId"), ctl.DeleteLesson)

	dashboardGroup := app.Group("/dashboard", auth)
	dashboardGroup.Get("/", ctl.Dashboard)
	dashboardGroup.Get("/stats", ctl.DashboardStats)
}
