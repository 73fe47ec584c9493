package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/s/mathCourses/internal/forms"
	"github.com/s/mathCourses/internal/middleware"
	"github.com/s/mathCourses/internal/models"
	"github.com/s/mathCourses/internal/storage"

	"gorm.io/gorm"
)

// HandleIndex — главная: избранные курсы и свежие отзывы.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := h.Page(r, "الرئيسية")

	featured, err := storage.FeaturedCourses(h.DB, 3)
	if err != nil {
		log.Printf("Ошибка загрузки избранных курсов: %v", err)
	}
	testimonials, err := storage.LatestTestimonials(h.DB, 3)
	if err != nil {
		log.Printf("Ошибка загрузки отзывов: %v", err)
	}

	data.Courses = featured
	data.Testimonials = testimonials
	h.Render(w, r, "index.html", data)
}

func (h *Handler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.Render(w, r, "about.html", h.Page(r, "عن المدرس"))
}

// HandleCourses — каталог, новые курсы первыми.
func (h *Handler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := storage.ListCourses(h.DB)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := h.Page(r, "الدورات")
	data.Courses = courses
	h.Render(w, r, "courses.html", data)
}

// HandleCourseDetail — страница курса по slug. Записанным студентам
// дополнительно показываем видео и экзамены.
func (h *Handler) HandleCourseDetail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	course, err := storage.CourseBySlug(h.DB, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := h.Page(r, course.Title)
	data.Course = course

	if student := middleware.CurrentStudent(r); student != nil {
		enrolled, _, err := h.enrollmentState(student.ID, course.ID)
		if err == nil && enrolled {
			data.Enrolled = true
			data.Videos, _ = storage.VideosByCourse(h.DB, course.ID)
			data.Exams, _ = storage.ExamsByCourse(h.DB, course.ID)
		}
	}

	h.Render(w, r, "course_detail.html", data)
}

func (h *Handler) enrollmentState(studentID, courseID uint) (bool, int64, error) {
	var n int64
	err := h.DB.Table("student_course").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&n).Error
	return n > 0, n, err
}

// HandleSubscribe — запись текущего студента на курс.
// Повторная запись — не ошибка, просто информационное сообщение.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	student := middleware.CurrentStudent(r)

	course, err := storage.CourseBySlug(h.DB, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	added, err := storage.Enroll(h.DB, student.ID, course.ID)
	if err != nil {
		h.FlashRedirect(w, r, "danger", "حدث خطأ، حاول مرة أخرى", "/course/"+course.Slug)
		return
	}
	if added {
		h.FlashRedirect(w, r, "success", "تم التسجيل في الدورة بنجاح", "/course/"+course.Slug)
	} else {
		h.FlashRedirect(w, r, "info", "أنت مسجل بالفعل في هذه الدورة", "/course/"+course.Slug)
	}
}

// HandleContact — публичная форма обратной связи.
func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.Render(w, r, "contact.html", h.Page(r, "اتصل بنا"))
		return
	}

	form, errs := forms.ParseContactForm(r)
	if errs != nil {
		h.FlashErrors(w, r, errs, "/contact")
		return
	}

	msg := models.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	}
	if err := storage.CreateMessage(h.DB, &msg); err != nil {
		h.FlashRedirect(w, r, "danger", "حدث خطأ، حاول مرة أخرى", "/contact")
		return
	}

	h.FlashRedirect(w, r, "success", "تم إرسال الرسالة بنجاح، سنتواصل معك قريباً", "/contact")
}
