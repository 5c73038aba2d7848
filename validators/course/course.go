package courseValidator

import (
	"coursebuilder/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ============ Requests ============

// CourseRequest is the body of course create and update
type CourseRequest struct {
	CourseName  string `json:"courseName" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

var courseMessages = messages{
	"courseName":  "Course name is required",
	"description": "Description is required",
}

// ModuleRequest creates a single module
type ModuleRequest struct {
	ModuleName  string `json:"moduleName" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Order       *int   `json:"order" validate:"required,min=1"`
	CourseID    string `json:"courseId" validate:"required,uuid"`
}

var moduleMessages = messages{
	"moduleName":  "Module name is required",
	"description": "Description is required",
	"order":       "Order is required",
	"courseId":    "Valid course ID is required",
}

// ModuleItem is one entry of a bulk module create
type ModuleItem struct {
	ModuleName  string `json:"moduleName" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Order       *int   `json:"order" validate:"required,min=1"`
}

// ModulesRequest creates many modules under one course
type ModulesRequest struct {
	CourseID string       `json:"courseId" validate:"required,uuid"`
	Modules  []ModuleItem `json:"modules" validate:"min=1,dive"`
}

// ModuleUpdateRequest replaces a module's editable fields
type ModuleUpdateRequest struct {
	ModuleName  string `json:"moduleName" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Order       *int   `json:"order" validate:"required,min=1"`
}

var bulkModuleMessages = messages{
	"moduleName":  "Module name is required",
	"description": "Description is required",
	"order":       "Order must be at least 1",
	"courseId":    "Valid course ID is required",
	"modules":     "At least one module is required",
}

// LessonRequest creates a single lesson
type LessonRequest struct {
	LessonName string `json:"lessonName" validate:"notblank"`
	Order      *int   `json:"order" validate:"required,min=1"`
	ModuleID   string `json:"moduleId" validate:"required,uuid"`
}

var lessonMessages = messages{
	"lessonName": "Lesson name is required",
	"order":      "Order is required",
	"moduleId":   "Valid module ID is required",
}

// LessonItem is one entry of a bulk lesson create
type LessonItem struct {
	LessonName string `json:"lessonName" validate:"notblank"`
	Order      *int   `json:"order" validate:"required,min=1"`
}

// LessonsRequest creates many lessons under one module
type LessonsRequest struct {
	ModuleID string       `json:"moduleId" validate:"required,uuid"`
	Lessons  []LessonItem `json:"lessons" validate:"min=1,dive"`
}

// LessonUpdateRequest replaces a lesson's editable fields
type LessonUpdateRequest struct {
	LessonName string `json:"lessonName" validate:"notblank"`
	Order      *int   `json:"order" validate:"required,min=1"`
}

var bulkLessonMessages = messages{
	"lessonName": "Lesson name is required",
	"order":      "Order must be at least 1",
	"moduleId":   "Valid module ID is required",
	"lessons":    "At least one lesson is required",
}

// ============ Validators ============

// validated decodes, trims and checks a request, then stores it under key
func validated[T any](key string, msgs messages, trim func(*T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if errs := decode(c, reqData, msgs); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		trim(reqData)

		if errs := check(reqData, msgs); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

// Course validates course create and update bodies
func Course() fiber.Handler {
	return validated("validatedCourse", courseMessages, func(r *CourseRequest) {
		r.CourseName = strings.TrimSpace(r.CourseName)
		r.Description = strings.TrimSpace(r.Description)
	})
}

// CreateModules accepts either {courseId, modules: [...]} or a single module
// carrying any of its own fields
func CreateModules() fiber.Handler {
	bulk := validated("validatedModules", bulkModuleMessages, func(r *ModulesRequest) {
		r.CourseID = strings.TrimSpace(r.CourseID)
		for i := range r.Modules {
			r.Modules[i].ModuleName = strings.TrimSpace(r.Modules[i].ModuleName)
			r.Modules[i].Description = strings.TrimSpace(r.Modules[i].Description)
		}
	})
	single := validated("validatedModule", moduleMessages, func(r *ModuleRequest) {
		r.ModuleName = strings.TrimSpace(r.ModuleName)
		r.Description = strings.TrimSpace(r.Description)
		r.CourseID = strings.TrimSpace(r.CourseID)
	})

	return func(c *fiber.Ctx) error {
		if isBulk(c.Body(), "modules", "moduleName", "description", "order") {
			return bulk(c)
		}
		return single(c)
	}
}

// UpdateModule validates a module update body
func UpdateModule() fiber.Handler {
	return validated("validatedModuleUpdate", bulkModuleMessages, func(r *ModuleUpdateRequest) {
		r.ModuleName = strings.TrimSpace(r.ModuleName)
		r.Description = strings.TrimSpace(r.Description)
	})
}

// CreateLessons accepts either {moduleId, lessons: [...]} or a single lesson
// carrying any of its own fields
func CreateLessons() fiber.Handler {
	bulk := validated("validatedLessons", bulkLessonMessages, func(r *LessonsRequest) {
		r.ModuleID = strings.TrimSpace(r.ModuleID)
		for i := range r.Lessons {
			r.Lessons[i].LessonName = strings.TrimSpace(r.Lessons[i].LessonName)
		}
	})
	single := validated("validatedLesson", lessonMessages, func(r *LessonRequest) {
		r.LessonName = strings.TrimSpace(r.LessonName)
		r.ModuleID = strings.TrimSpace(r.ModuleID)
	})

	return func(c *fiber.Ctx) error {
		if isBulk(c.Body(), "lessons", "lessonName", "order") {
			return bulk(c)
		}
		return single(c)
	}
}

// UpdateLesson validates a lesson update body
func UpdateLesson() fiber.Handler {
	return validated("validatedLessonUpdate", bulkLessonMessages, func(r *LessonUpdateRequest) {
		r.LessonName = strings.TrimSpace(r.LessonName)
	})
}

// EntityID parses the named path parameter into c.Locals(param). An id that
// is not a UUID becomes uuid.Nil, which never matches a stored row.
func EntityID(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
		if err != nil {
			id = uuid.Nil
		}
		c.Locals(param, id)
		return c.Next()
	}
}
