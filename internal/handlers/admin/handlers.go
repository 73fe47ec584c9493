package admin

import (
	"fmt"
	"net/http"

	"github.com/s/mathCourses/internal/forms"
	"github.com/s/mathCourses/internal/handlers"
	"github.com/s/mathCourses/internal/middleware"
	"github.com/s/mathCourses/internal/models"
	"github.com/s/mathCourses/internal/storage"
	"github.com/s/mathCourses/internal/uploads"
)

// Service — обработчики админки поверх общего Handler.
type Service struct {
	handlers.Handler
}

// HandleLogin — вход администратора. Учетная запись одна и задается
// конфигурацией, таблицы админов нет.
func (s *Service) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAdmin(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		s.Render(w, r, "adminLogin", s.Page(r, "دخول الإدارة"))
		return
	}

	form, errs := forms.ParseAdminLoginForm(r)
	if errs != nil {
		s.FlashErrors(w, r, errs, "/admin/login")
		return
	}

	if form.Username != s.Cfg.AdminUser || form.Password != s.Cfg.AdminPass {
		s.FlashRedirect(w, r, "danger", "بيانات تسجيل الدخول غير صحيحة", "/admin/login")
		return
	}

	session, _ := s.Store.Get(r, middleware.SessionName)
	session.Values[middleware.SessionAdminKey] = true
	session.Save(r, w)
	s.FlashRedirect(w, r, "success", "تم تسجيل الدخول بنجاح", "/admin")
}

func (s *Service) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.Store.Get(r, middleware.SessionName)
	delete(session.Values, middleware.SessionAdminKey)
	session.Save(r, w)
	s.FlashRedirect(w, r, "info", "تم تسجيل الخروج", "/")
}

// HandleDashboard — сводка и список курсов.
func (s *Service) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := storage.CountStats(s.DB)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	courses, err := storage.ListCourses(s.DB)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := s.Page(r, "لوحة الإدارة")
	data.Stats = stats
	data.Courses = courses
	s.Render(w, r, "adminDashboard", data)
}

func (s *Service) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := storage.CountStats(s.DB)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := s.Page(r, "الإحصائيات")
	data.Stats = stats
	s.Render(w, r, "adminStats", data)
}

func (s *Service) HandleMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := storage.ListMessages(s.DB)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := s.Page(r, "الرسائل")
	data.Messages = messages
	s.Render(w, r, "adminMessages", data)
}

// ------------------------------------------------------------------
// Студенты
// ------------------------------------------------------------------

// HandleStudents — список с поиском по подстроке имени или email.
func (s *Service) HandleStudents(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	students, err := storage.SearchStudents(s.DB, search)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := s.Page(r, "الطلاب")
	data.Students = students
	data.Search = search
	s.Render(w, r, "adminStudents", data)
}

// HandleToggleStudent блокирует/разблокирует аккаунт без удаления.
func (s *Service) HandleToggleStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if _, err := storage.ToggleStudentActive(s.DB, id); err != nil {
		http.NotFound(w, r)
		return
	}
	s.FlashRedirect(w, r, "success", "تم تحديث حالة الطالب", "/admin/students")
}

func (s *Service) HandleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	picture, err := storage.DeleteStudent(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	uploads.Remove(s.Cfg.UploadFolder, picture)
	s.FlashRedirect(w, r, "info", "تم حذف الطالب", "/admin/students")
}

// HandleDeleteAllStudents — необратимое удаление всех студентов.
// Без confirm=yes ничего не делаем.
func (s *Service) HandleDeleteAllStudents(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		s.FlashRedirect(w, r, "warning",
			"عملية خطيرة: أعد المحاولة مع confirm=yes لحذف جميع الطلاب", "/admin")
		return
	}

	n, err := storage.DeleteAllStudents(s.DB)
	if err != nil {
		s.FlashRedirect(w, r, "danger", fmt.Sprintf("حدث خطأ أثناء الحذف: %v", err), "/admin")
		return
	}
	s.FlashRedirect(w, r, "success", fmt.Sprintf("تم حذف %d مستخدم بنجاح", n), "/admin")
}

// ------------------------------------------------------------------
// Отзывы
// ------------------------------------------------------------------

func (s *Service) HandleTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := storage.ListTestimonials(s.DB)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := s.Page(r, "المراجعات")
	data.Testimonials = testimonials
	s.Render(w, r, "adminTestimonials", data)
}

func (s *Service) HandleNewTestimonial(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		courses, _ := storage.ListCoursesByTitle(s.DB)
		data := s.Page(r, "إضافة مراجعة جديدة")
		data.Courses = courses
		s.Render(w, r, "adminTestimonialForm", data)
		return
	}

	form, errs := forms.ParseTestimonialForm(r)
	if errs != nil {
		s.FlashErrors(w, r, errs, "/admin/testimonial/new")
		return
	}

	testimonial := models.Testimonial{
		StudentName: form.StudentName,
		Content:     form.Content,
		Rating:      form.Rating,
		CourseID:    form.CourseID,
	}
	if err := storage.CreateTestimonial(s.DB, &testimonial); err != nil {
		s.FlashRedirect(w, r, "danger", "حدث خطأ، حاول مرة أخرى", "/admin/testimonial/new")
		return
	}
	s.FlashRedirect(w, r, "success", "تم إضافة المراجعة بنجاح", "/admin/testimonials")
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "yes"
}
