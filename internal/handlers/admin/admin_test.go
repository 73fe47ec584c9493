package admin

import (
	"bytes"
	"encoding/csv"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/s/mathCourses/internal/config"
	"github.com/s/mathCourses/internal/database"
	"github.com/s/mathCourses/internal/handlers"
	"github.com/s/mathCourses/internal/middleware"
	"github.com/s/mathCourses/internal/models"
	"github.com/s/mathCourses/internal/storage"
)

func setupAdmin(t *testing.T) (*mux.Router, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		SecretKey:    "test-secret",
		UploadFolder: t.TempDir(),
		TemplatesDir: "../../../template",
		AdminUser:    "admin",
		AdminPass:    "secret",
	}
	store := sessions.NewCookieStore([]byte(cfg.SecretKey))
	h := handlers.NewHandler(db, store, cfg, nil)
	s := Service{Handler: *h}

	r := mux.NewRouter()
	r.Use(middleware.Authenticate(db, store))
	r.HandleFunc("/admin/login", s.HandleLogin).Methods("GET", "POST")
	r.HandleFunc("/admin/logout", s.HandleLogout).Methods("GET")
	r.HandleFunc("/admin", middleware.RequireAdmin(s.HandleDashboard)).Methods("GET")
	r.HandleFunc("/admin/stats", middleware.RequireAdmin(s.HandleStats)).Methods("GET")
	r.HandleFunc("/admin/messages", middleware.RequireAdmin(s.HandleMessages)).Methods("GET")
	r.HandleFunc("/admin/courses", middleware.RequireAdmin(s.HandleCourses)).Methods("GET")
	r.HandleFunc("/admin/course/new", middleware.RequireAdmin(s.HandleNewCourse)).Methods("GET", "POST")
	r.HandleFunc("/admin/course/edit/{id}", middleware.RequireAdmin(s.HandleEditCourse)).Methods("GET", "POST")
	r.HandleFunc("/admin/course/delete/{id}", middleware.RequireAdmin(s.HandleDeleteCourse)).Methods("GET")
	r.HandleFunc("/admin/course/{id}", middleware.RequireAdmin(s.HandleCourseDetail)).Methods("GET")
	r.HandleFunc("/admin/course/{id}/videos", middleware.RequireAdmin(s.HandleCourseVideos)).Methods("GET", "POST")
	r.HandleFunc("/admin/course/{id}/video/{video_id}/delete", middleware.RequireAdmin(s.HandleDeleteVideo)).Methods("POST")
	r.HandleFunc("/admin/course/{id}/exams", middleware.RequireAdmin(s.HandleCourseExams)).Methods("GET", "POST")
	r.HandleFunc("/admin/clear-courses", middleware.RequireAdmin(s.HandleClearCourses)).Methods("GET")
	r.HandleFunc("/admin/students", middleware.RequireAdmin(s.HandleStudents)).Methods("GET")
	r.HandleFunc("/admin/students/export", middleware.RequireAdmin(s.HandleExportStudents)).Methods("GET")
	r.HandleFunc("/admin/student/toggle_active/{id}", middleware.RequireAdmin(s.HandleToggleStudent)).Methods("GET")
	r.HandleFunc("/admin/student/delete/{id}", middleware.RequireAdmin(s.HandleDeleteStudent)).Methods("GET")
	r.HandleFunc("/admin/delete-all-users", middleware.RequireAdmin(s.HandleDeleteAllStudents)).Methods("GET")
	r.HandleFunc("/admin/testimonials", middleware.RequireAdmin(s.HandleTestimonials)).Methods("GET")
	r.HandleFunc("/admin/testimonial/new", middleware.RequireAdmin(s.HandleNewTestimonial)).Methods("GET", "POST")

	return r, db, cfg
}

func do(r *mux.Router, method, path string, values url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if method == "POST" {
		req = httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postMultipart(t *testing.T, r *mux.Router, path string, fields map[string]string, fileField, filename, content string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(fileField, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// adminCookies выполняет вход администратора и возвращает куку сессии.
func adminCookies(t *testing.T, r *mux.Router) []*http.Cookie {
	t.Helper()
	w := do(r, "POST", "/admin/login", url.Values{
		"username": {"admin"},
		"password": {"secret"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin", w.Header().Get("Location"))

	var last *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionName {
			last = c
		}
	}
	require.NotNil(t, last)
	return []*http.Cookie{last}
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	r, _, _ := setupAdmin(t)
	for _, path := range []string{"/admin", "/admin/courses", "/admin/students", "/admin/students/export", "/admin/messages"} {
		w := do(r, "GET", path, nil, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r, _, _ := setupAdmin(t)
	w := do(r, "POST", "/admin/login", url.Values{
		"username": {"admin"},
		"password": {"nope"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdminDashboardAfterLogin(t *testing.T) {
	r, _, _ := setupAdmin(t)
	cookies := adminCookies(t, r)

	w := do(r, "GET", "/admin", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminLogout(t *testing.T) {
	r, _, _ := setupAdmin(t)
	cookies := adminCookies(t, r)

	w := do(r, "GET", "/admin/logout", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)

	w = do(r, "GET", "/admin", nil, []*http.Cookie{cleared})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestCreateAndEditCourse(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)

	w := do(r, "POST", "/admin/course/new", url.Values{
		"title":      {"Algebra Basics"},
		"short_desc": {"وصف"},
		"price":      {"200"},
		"featured":   {"on"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/courses", w.Header().Get("Location"))

	course, err := storage.CourseBySlug(db, "algebra-basics")
	require.NoError(t, err)
	assert.True(t, course.Featured)

	w = do(r, "POST", "/admin/course/edit/1", url.Values{
		"title":      {"Algebra Basics"},
		"slug":       {"algebra-basics"},
		"short_desc": {"وصف جديد"},
		"price":      {"250"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/courses", w.Header().Get("Location"))

	course, err = storage.CourseByID(db, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, course.Price)
	assert.False(t, course.Featured)
}

func TestCreateCourseDuplicateSlug(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateCourse(db, &models.Course{Title: "الجبر", Slug: "algebra", ShortDesc: "x", Price: 1}))

	w := do(r, "POST", "/admin/course/new", url.Values{
		"title":      {"Algebra"},
		"slug":       {"algebra"},
		"short_desc": {"وصف"},
		"price":      {"10"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/course/new", w.Header().Get("Location"))
}

func TestDeleteCourse(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateCourse(db, &models.Course{Title: "الجبر", Slug: "algebra", ShortDesc: "x", Price: 1}))

	w := do(r, "GET", "/admin/course/delete/1", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/courses", w.Header().Get("Location"))

	courses, err := storage.ListCourses(db)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestClearCoursesNeedsConfirm(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateCourse(db, &models.Course{Title: "الجبر", Slug: "algebra", ShortDesc: "x", Price: 1}))

	w := do(r, "GET", "/admin/clear-courses", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	courses, err := storage.ListCourses(db)
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	w = do(r, "GET", "/admin/clear-courses?confirm=yes", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
	courses, err = storage.ListCourses(db)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestAddExam(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateCourse(db, &models.Course{Title: "الجبر", Slug: "algebra", ShortDesc: "x", Price: 1}))

	w := do(r, "POST", "/admin/course/1/exams", url.Values{
		"title":          {"اختبار شهري"},
		"questions":      {`[{"question":"2+2","options":["3","4"],"answer":"4"}]`},
		"exam_type":      {"monthly"},
		"scheduled_date": {"2024-05-01 18:00"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/course/1/exams", w.Header().Get("Location"))

	exams, err := storage.ExamsByCourse(db, 1)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, models.ExamTypeMonthly, exams[0].ExamType)
	require.NotNil(t, exams[0].ScheduledDate)
}

func TestUploadVideoAnyExtension(t *testing.T) {
	r, db, cfg := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateCourse(db, &models.Course{Title: "الجبر", Slug: "algebra", ShortDesc: "x", Price: 1}))

	// Видео не проходит белый список картинок — принимается любой файл.
	w := postMultipart(t, r, "/admin/course/1/videos", map[string]string{
		"title": "الدرس الأول",
	}, "file", "lesson.mp4", "video-bytes", cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/course/1/videos", w.Header().Get("Location"))

	videos, err := storage.VideosByCourse(db, 1)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "lesson.mp4", videos[0].FilePath)

	data, err := os.ReadFile(filepath.Join(cfg.UploadFolder, "lesson.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))
}

func TestUploadVideoRequiresFile(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateCourse(db, &models.Course{Title: "الجبر", Slug: "algebra", ShortDesc: "x", Price: 1}))

	w := do(r, "POST", "/admin/course/1/videos", url.Values{"title": {"الدرس الأول"}}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/course/1/videos", w.Header().Get("Location"))

	videos, err := storage.VideosByCourse(db, 1)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestDeleteVideoRemovesRowAndFile(t *testing.T) {
	r, db, cfg := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateCourse(db, &models.Course{Title: "الجبر", Slug: "algebra", ShortDesc: "x", Price: 1}))

	path := filepath.Join(cfg.UploadFolder, "lesson.mp4")
	require.NoError(t, os.WriteFile(path, []byte("video-bytes"), 0o644))
	require.NoError(t, storage.CreateVideo(db, &models.Video{Title: "الدرس الأول", FilePath: "lesson.mp4", CourseID: 1}))

	w := do(r, "POST", "/admin/course/1/video/1/delete", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/course/1/videos", w.Header().Get("Location"))

	videos, err := storage.VideosByCourse(db, 1)
	require.NoError(t, err)
	assert.Empty(t, videos)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestToggleAndDeleteStudent(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)
	student := &models.Student{Name: "سارة", Email: "sara@example.com", PasswordHash: "h", Active: true}
	require.NoError(t, storage.CreateStudent(db, student))

	w := do(r, "GET", "/admin/student/toggle_active/1", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/students", w.Header().Get("Location"))

	reloaded, err := storage.StudentByID(db, student.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Active)

	w = do(r, "GET", "/admin/student/delete/1", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	_, err = storage.StudentByID(db, student.ID)
	assert.Error(t, err)
}

func TestDeleteAllStudentsNeedsConfirm(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateStudent(db, &models.Student{Name: "سارة", Email: "s@e.com", PasswordHash: "h", Active: true}))

	w := do(r, "GET", "/admin/delete-all-users", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	students, err := storage.ListStudents(db)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	w = do(r, "GET", "/admin/delete-all-users?confirm=yes", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	students, err = storage.ListStudents(db)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestNewTestimonial(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)

	w := do(r, "POST", "/admin/testimonial/new", url.Values{
		"student_name": {"أحمد"},
		"content":      {"دورة ممتازة"},
		"rating":       {"5"},
		"course_id":    {"0"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/testimonials", w.Header().Get("Location"))

	testimonials, err := storage.ListTestimonials(db)
	require.NoError(t, err)
	require.Len(t, testimonials, 1)
	assert.Nil(t, testimonials[0].CourseID)
}

func TestExportStudentsCSV(t *testing.T) {
	r, db, _ := setupAdmin(t)
	cookies := adminCookies(t, r)
	require.NoError(t, storage.CreateStudent(db, &models.Student{Name: "Sara", Email: "sara@example.com", PasswordHash: "h", Phone: "0100", Active: true}))
	inactive := &models.Student{Name: "Ahmed", Email: "ahmed@example.com", PasswordHash: "h", Active: true}
	require.NoError(t, storage.CreateStudent(db, inactive))
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	w := do(r, "GET", "/admin/students/export", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=students.csv", w.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ID", "Name", "Email", "Phone", "Active", "Registered At"}, records[0])
	assert.Equal(t, "Yes", records[1][4])
	assert.Equal(t, "No", records[2][4])
}
