package routers

import (
	"context"
	"coursebuilder/config"
	"coursebuilder/database"
	"coursebuilder/logger"
	courseModels "coursebuilder/models/course"
	"coursebuilder/session"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeSessions treats the bearer token as the user id
var fakeSessions = session.ProviderFunc(func(_ context.Context, creds session.Credentials) (*session.Identity, error) {
	if token := creds.BearerToken(); token != "" {
		return &session.Identity{UserID: token}, nil
	}
	return nil, nil
})

// recordingLogger keeps Error calls and their extras
type recordingLogger struct {
	logger.Logger

	mu     sync.Mutex
	errors []recordedError
}

type recordedError struct {
	msg    string
	extras map[string]interface{}
}

func (r *recordingLogger) Error(msg string, args ...interface{}) {
	entry := recordedError{msg: msg}
	for _, arg := range args {
		if extras, ok := arg.(map[string]interface{}); ok {
			entry.extras = extras
		}
	}
	r.mu.Lock()
	r.errors = append(r.errors, entry)
	r.mu.Unlock()
}

func quietLogger() logger.Logger {
	return logger.NewRollbarLogger(log.New(io.Discard, "", 0), logger.Options{})
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestEnv(t, quietLogger())
	return app
}

func newTestEnv(t *testing.T, appLog logger.Logger) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), "silent")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.RunMigrations(db))

	return NewApp(Deps{
		Config:   &config.Config{CorsAllowOrigins: "*"},
		DB:       db,
		Sessions: fakeSessions,
		Logger:   appLog,
	}), db
}

func doRequest(t *testing.T, app *fiber.App, method, path, user, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+user)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeInto[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

type errorBody struct {
	Error   string `json:"error"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

type internalErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func createCourse(t *testing.T, app *fiber.App, user, name string) courseModels.Course {
	t.Helper()
	code, data := doRequest(t, app, http.MethodPost, "/course", user, `{"courseName":"`+name+`","description":"Intro"}`)
	require.Equal(t, http.StatusCreated, code, string(data))
	return decodeInto[courseModels.Course](t, data)
}

func createModules(t *testing.T, app *fiber.App, user string, courseID uuid.UUID, orders ...int) []courseModels.Module {
	t.Helper()
	items := make([]string, len(orders))
	for i, order := range orders {
		items[i] = fmt.Sprintf(`{"moduleName":"M%d","description":"d","order":%d}`, i, order)
	}
	body := fmt.Sprintf(`{"courseId":"%s","modules":[%s]}`, courseID, strings.Join(items, ","))
	code, data := doRequest(t, app, http.MethodPost, "/module", user, body)
	require.Equal(t, http.StatusCreated, code, string(data))
	return decodeInto[[]courseModels.Module](t, data)
}

func createLessons(t *testing.T, app *fiber.App, user string, moduleID uuid.UUID, orders ...int) []courseModels.Lesson {
	t.Helper()
	items := make([]string, len(orders))
	for i, order := range orders {
		items[i] = fmt.Sprintf(`{"lessonName":"L%d","order":%d}`, i, order)
	}
	body := fmt.Sprintf(`{"moduleId":"%s","lessons":[%s]}`, moduleID, strings.Join(items, ","))
	code, data := doRequest(t, app, http.MethodPost, "/lesson", user, body)
	require.Equal(t, http.StatusCreated, code, string(data))
	return decodeInto[[]courseModels.Lesson](t, data)
}

func TestUnauthenticated(t *testing.T) {
	app := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/course"},
		{http.MethodPost, "/course"},
		{http.MethodGet, "/course/" + uuid.NewString()},
		{http.MethodDelete, "/module/" + uuid.NewString()},
		{http.MethodPost, "/lesson"},
		{http.MethodGet, "/dashboard/stats"},
	} {
		code, data := doRequest(t, app, route.method, route.path, "", `{}`)
		assert.Equal(t, http.StatusUnauthorized, code, route.path)
		assert.Equal(t, "Unauthorized! Please login to continue", decodeInto[errorBody](t, data).Error)
	}
}

func TestCourseOwnership(t *testing.T) {
	app := newTestApp(t)

	course := createCourse(t, app, "user-a", "Go Basics")
	assert.Equal(t, "user-a", course.UserID)
	assert.Equal(t, "Go Basics", course.CourseName)
	assert.Equal(t, "Intro", course.Description)
	assert.NotEqual(t, uuid.Nil, course.ID)

	other := createCourse(t, app, "user-a", "Go Basics")
	assert.NotEqual(t, course.ID, other.ID)

	tests := []struct {
		name     string
		method   string
		path     string
		user     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"owner reads", http.MethodGet, "/course/" + course.ID.String(), "user-a", "", http.StatusOK, ""},
		{"stranger reads", http.MethodGet, "/course/" + course.ID.String(), "user-b", "", http.StatusNotFound, "Course not found"},
		{"stranger updates", http.MethodPut, "/course/" + course.ID.String(), "user-b", `{"courseName":"x","description":"y"}`, http.StatusNotFound, "Course not found"},
		{"malformed id", http.MethodGet, "/course/not-a-uuid", "user-a", "", http.StatusNotFound, "Course not found"},
		{"invalid update", http.MethodPut, "/course/" + course.ID.String(), "user-a", `{"courseName":"","description":"y"}`, http.StatusBadRequest, "Validation failed"},
		{"owner updates", http.MethodPut, "/course/" + course.ID.String(), "user-a", `{"courseName":"Go Advanced","description":"More"}`, http.StatusOK, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, data := doRequest(t, app, tc.method, tc.path, tc.user, tc.body)
			require.Equal(t, tc.wantCode, code, string(data))
			if tc.wantErr != "" {
				assert.Equal(t, tc.wantErr, decodeInto[errorBody](t, data).Error)
			}
		})
	}

	// stranger's delete reports success but leaves the course alone
	code, _ := doRequest(t, app, http.MethodDelete, "/course/"+course.ID.String(), "user-b", "")
	assert.Equal(t, http.StatusOK, code)

	code, data := doRequest(t, app, http.MethodGet, "/course/"+course.ID.String(), "user-a", "")
	require.Equal(t, http.StatusOK, code)
	got := decodeInto[courseModels.Course](t, data)
	assert.Equal(t, "Go Advanced", got.CourseName)
	assert.Equal(t, "More", got.Description)
}

func TestEmptyLists(t *testing.T) {
	app := newTestApp(t)

	for path, msg := range map[string]string{
		"/course": "No courses found",
		"/module": "No modules found",
		"/lesson": "No lessons found",
	} {
		code, data := doRequest(t, app, http.MethodGet, path, "user-a", "")
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, msg, decodeInto[errorBody](t, data).Error)
	}

	code, data := doRequest(t, app, http.MethodGet, "/dashboard", "user-a", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(data))
}

func TestBulkModuleCreateIsAllOrNothing(t *testing.T) {
	app := newTestApp(t)
	course := createCourse(t, app, "user-a", "Go Basics")

	body := fmt.Sprintf(`{"courseId":"%s","modules":[
		{"moduleName":"M1","description":"d","order":1},
		{"moduleName":"","description":"d","order":2}
	]}`, course.ID)
	code, data := doRequest(t, app, http.MethodPost, "/module", "user-a", body)
	require.Equal(t, http.StatusBadRequest, code)

	errBody := decodeInto[errorBody](t, data)
	assert.Equal(t, "Validation failed", errBody.Error)
	require.Len(t, errBody.Details, 1)
	assert.Equal(t, "modules.1.moduleName", errBody.Details[0].Field)
	assert.Equal(t, "Module name is required", errBody.Details[0].Message)

	code, _ = doRequest(t, app, http.MethodGet, "/module", "user-a", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestModuleAndLessonFlow(t *testing.T) {
	app := newTestApp(t)
	course := createCourse(t, app, "user-a", "Go Basics")

	// another user cannot attach modules to this course
	body := fmt.Sprintf(`{"courseId":"%s","modules":[{"moduleName":"M1","description":"d","order":1}]}`, course.ID)
	code, data := doRequest(t, app, http.MethodPost, "/module", "user-b", body)
	require.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Course not found", decodeInto[errorBody](t, data).Error)

	modules := createModules(t, app, "user-a", course.ID, 2, 1)
	require.Len(t, modules, 2)
	assert.Equal(t, 2, modules[0].Order)
	assert.Equal(t, course.ID, modules[0].CourseID)

	// single create
	code, data = doRequest(t, app, http.MethodPost, "/module", "user-a",
		fmt.Sprintf(`{"moduleName":"Extra","description":"d","order":3,"courseId":"%s"}`, course.ID))
	require.Equal(t, http.StatusCreated, code, string(data))
	extra := decodeInto[courseModels.Module](t, data)
	assert.Equal(t, "Extra", extra.ModuleName)

	lessons := createLessons(t, app, "user-a", modules[1].ID, 3, 1, 2)
	require.Len(t, lessons, 3)
	ids := map[uuid.UUID]bool{}
	for i, l := range lessons {
		ids[l.ID] = true
		assert.Equal(t, []int{3, 1, 2}[i], l.Order)
		assert.Equal(t, modules[1].ID, l.ModuleID)
	}
	assert.Len(t, ids, 3)

	code, _ = doRequest(t, app, http.MethodPost, "/lesson", "user-b",
		fmt.Sprintf(`{"moduleId":"%s","lessons":[{"lessonName":"x","order":1}]}`, modules[1].ID))
	assert.Equal(t, http.StatusNotFound, code)

	// outline is sorted at every level
	code, data = doRequest(t, app, http.MethodGet, "/course", "user-a", "")
	require.Equal(t, http.StatusOK, code)
	courses := decodeInto[[]courseModels.Course](t, data)
	require.Len(t, courses, 1)
	require.Len(t, courses[0].Modules, 3)
	assert.Equal(t, []string{"M1", "M0", "Extra"}, []string{
		courses[0].Modules[0].ModuleName, courses[0].Modules[1].ModuleName, courses[0].Modules[2].ModuleName,
	})
	require.Len(t, courses[0].Modules[0].Lessons, 3)
	assert.Equal(t, []string{"L1", "L2", "L0"}, []string{
		courses[0].Modules[0].Lessons[0].LessonName, courses[0].Modules[0].Lessons[1].LessonName, courses[0].Modules[0].Lessons[2].LessonName,
	})

	code, data = doRequest(t, app, http.MethodGet, "/module", "user-a", "")
	require.Equal(t, http.StatusOK, code)
	listed := decodeInto[[]courseModels.Module](t, data)
	require.Len(t, listed, 3)
	require.NotNil(t, listed[0].Course)
	assert.Equal(t, "Go Basics", listed[0].Course.CourseName)

	code, data = doRequest(t, app, http.MethodGet, "/lesson/"+lessons[0].ID.String(), "user-a", "")
	require.Equal(t, http.StatusOK, code)
	lesson := decodeInto[courseModels.Lesson](t, data)
	require.NotNil(t, lesson.Module)
	assert.Equal(t, course.ID, lesson.Module.CourseID)

	// updates through the ownership chain
	code, _ = doRequest(t, app, http.MethodPut, "/module/"+modules[0].ID.String(), "user-b", `{"moduleName":"x","description":"y","order":1}`)
	assert.Equal(t, http.StatusNotFound, code)
	code, data = doRequest(t, app, http.MethodPut, "/module/"+modules[0].ID.String(), "user-a", `{"moduleName":"Renamed","description":"y","order":5}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5, decodeInto[courseModels.Module](t, data).Order)

	code, _ = doRequest(t, app, http.MethodPut, "/lesson/"+lessons[0].ID.String(), "user-b", `{"lessonName":"x","order":1}`)
	assert.Equal(t, http.StatusNotFound, code)
	code, data = doRequest(t, app, http.MethodPut, "/lesson/"+lessons[0].ID.String(), "user-a", `{"lessonName":"Renamed","order":9}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Renamed", decodeInto[courseModels.Lesson](t, data).LessonName)

	code, data = doRequest(t, app, http.MethodGet, "/dashboard/stats", "user-a", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"courses":1,"modules":3,"lessons":3}`, string(data))

	// deletes are idempotent
	for i := 0; i < 2; i++ {
		code, data = doRequest(t, app, http.MethodDelete, "/lesson/"+lessons[0].ID.String(), "user-a", "")
		require.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"message":"Lesson deleted successfully"}`, string(data))
	}
	code, _ = doRequest(t, app, http.MethodGet, "/lesson/"+lessons[0].ID.String(), "user-a", "")
	assert.Equal(t, http.StatusNotFound, code)

	for i := 0; i < 2; i++ {
		code, data = doRequest(t, app, http.MethodDelete, "/module/"+modules[1].ID.String(), "user-a", "")
		require.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"message":"Module deleted successfully"}`, string(data))
	}
	code, _ = doRequest(t, app, http.MethodGet, "/lesson/"+lessons[1].ID.String(), "user-a", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDeleteCourseTwiceCascades(t *testing.T) {
	app := newTestApp(t)
	course := createCourse(t, app, "user-a", "Go Basics")
	modules := createModules(t, app, "user-a", course.ID, 1, 2)
	createLessons(t, app, "user-a", modules[0].ID, 1, 2)

	var bodies []string
	for i := 0; i < 2; i++ {
		code, data := doRequest(t, app, http.MethodDelete, "/course/"+course.ID.String(), "user-a", "")
		require.Equal(t, http.StatusOK, code)
		bodies = append(bodies, string(data))
	}
	assert.Equal(t, bodies[0], bodies[1])
	assert.JSONEq(t, `{"message":"Course deleted successfully"}`, bodies[0])

	code, _ := doRequest(t, app, http.MethodGet, "/module", "user-a", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = doRequest(t, app, http.MethodGet, "/lesson", "user-a", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, data := doRequest(t, app, http.MethodGet, "/dashboard/stats", "user-a", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"courses":0,"modules":0,"lessons":0}`, string(data))
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	code, data := doRequest(t, app, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))
}

func TestStoreFailureIsInternalError(t *testing.T) {
	rec := &recordingLogger{Logger: quietLogger()}
	app, db := newTestEnv(t, rec)

	course := createCourse(t, app, "user-a", "Go Basics")
	createModules(t, app, "user-a", course.ID, 1)
	require.NoError(t, db.Exec("DROP TABLE lessons").Error)

	path := "/course/" + course.ID.String()
	code, data := doRequest(t, app, http.MethodDelete, path, "user-a", "")
	require.Equal(t, http.StatusInternalServerError, code, string(data))

	body := decodeInto[internalErrorBody](t, data)
	assert.Equal(t, "Failed to delete course", body.Error)
	assert.Contains(t, body.Details, "lessons")

	// the course survives the failed transaction
	var courses int64
	require.NoError(t, db.Model(&courseModels.Course{}).Count(&courses).Error)
	assert.Equal(t, int64(1), courses)

	code, data = doRequest(t, app, http.MethodGet, "/course", "user-a", "")
	require.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to fetch courses", decodeInto[internalErrorBody](t, data).Error)

	// logged request details stay intact after later requests reuse buffers
	doRequest(t, app, http.MethodGet, "/healthz", "", "")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.errors, 2)
	assert.Equal(t, "Failed to delete course", rec.errors[0].msg)
	assert.Equal(t, map[string]interface{}{"method": http.MethodDelete, "path": path}, rec.errors[0].extras)
	assert.Equal(t, map[string]interface{}{"method": http.MethodGet, "path": "/course"}, rec.errors[1].extras)
}

func TestUppercaseIDsInBody(t *testing.T) {
	app := newTestApp(t)
	course := createCourse(t, app, "user-a", "Go Basics")
	upper := strings.ToUpper(course.ID.String())

	code, data := doRequest(t, app, http.MethodPost, "/module", "user-a",
		fmt.Sprintf(`{"courseId":"%s","modules":[{"moduleName":"M1","description":"d","order":1}]}`, upper))
	require.Equal(t, http.StatusCreated, code, string(data))
	modules := decodeInto[[]courseModels.Module](t, data)
	require.Len(t, modules, 1)
	assert.Equal(t, course.ID, modules[0].CourseID)

	code, data = doRequest(t, app, http.MethodPost, "/lesson", "user-a",
		fmt.Sprintf(`{"lessonName":"L1","order":1,"moduleId":"%s"}`, strings.ToUpper(modules[0].ID.String())))
	require.Equal(t, http.StatusCreated, code, string(data))
	assert.Equal(t, modules[0].ID, decodeInto[courseModels.Lesson](t, data).ModuleID)

	code, _ = doRequest(t, app, http.MethodGet, "/course/"+upper, "user-a", "")
	assert.Equal(t, http.StatusOK, code)
}
