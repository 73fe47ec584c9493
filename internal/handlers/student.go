package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/s/mathCourses/internal/auth"
	"github.com/s/mathCourses/internal/forms"
	"github.com/s/mathCourses/internal/middleware"
	"github.com/s/mathCourses/internal/models"
	"github.com/s/mathCourses/internal/storage"
	"github.com/s/mathCourses/internal/uploads"

	"gorm.io/gorm"
)

// HandleRegister — регистрация студента с выбором первого курса.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		courses, _ := storage.ListCoursesByTitle(h.DB)
		data := h.Page(r, "إنشاء حساب")
		data.Courses = courses
		h.Render(w, r, "register.html", data)
		return
	}

	form, errs := forms.ParseRegisterForm(r)
	if errs != nil {
		h.FlashErrors(w, r, errs, "/register")
		return
	}

	// Аватар не обязателен; принимаем только картинки из белого списка.
	var filename string
	if file, fh, err := r.FormFile("profile_picture"); err == nil {
		file.Close()
		if uploads.AllowedImage(fh.Filename) {
			filename, err = uploads.Save(fh, h.Cfg.UploadFolder)
			if err != nil {
				log.Printf("Ошибка сохранения аватара: %v", err)
				filename = ""
			}
		}
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	student := models.Student{
		Name:           form.Name,
		Email:          form.Email,
		Phone:          form.Phone,
		City:           form.City,
		PasswordHash:   hash,
		Active:         true,
		ProfilePicture: filename,
	}

	if err := storage.CreateStudent(h.DB, &student); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			h.FlashRedirect(w, r, "danger", "البريد الإلكتروني مستخدم بالفعل", "/register")
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	// Сразу записываем на выбранный курс (если он еще существует).
	if _, err := storage.CourseByID(h.DB, form.CourseID); err == nil {
		if _, err := storage.Enroll(h.DB, student.ID, form.CourseID); err != nil {
			log.Printf("Ошибка записи на курс при регистрации: %v", err)
		}
	}

	h.LoginStudent(w, r, &student, false)
	h.FlashRedirect(w, r, "success", "تم التسجيل بنجاح! تم تسجيل دخولك تلقائياً", "/student/dashboard")
}

// HandleStudentLogin — вход по email и паролю.
func (h *Handler) HandleStudentLogin(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentStudent(r) != nil {
		http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.Render(w, r, "student_login.html", h.Page(r, "تسجيل الدخول"))
		return
	}

	form, errs := forms.ParseStudentLoginForm(r)
	if errs != nil {
		h.FlashErrors(w, r, errs, "/student/login")
		return
	}

	student, err := storage.StudentByEmail(h.DB, form.Email)
	if err != nil || !auth.CheckPassword(student.PasswordHash, form.Password) {
		h.FlashRedirect(w, r, "danger", "بيانات تسجيل الدخول غير صحيحة", "/student/login")
		return
	}

	// Заблокированного студента не пускаем даже с верным паролем.
	if !student.Active {
		h.FlashRedirect(w, r, "danger", "الحساب غير مفعل، يرجى التواصل مع الإدارة", "/student/login")
		return
	}

	h.LoginStudent(w, r, student, form.Remember)
	h.AddFlash(w, r, "success", "أهلاً وسهلاً "+student.Name)

	if next := r.URL.Query().Get("next"); next != "" {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
}

// HandleStudentLogout сбрасывает личность студента (флаг админа не трогаем).
func (h *Handler) HandleStudentLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, middleware.SessionName)
	delete(session.Values, middleware.SessionStudentKey)
	session.Save(r, w)
	h.FlashRedirect(w, r, "info", "تم تسجيل الخروج بنجاح", "/")
}

// HandleStudentDashboard — кабинет студента со списком его курсов.
func (h *Handler) HandleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	student := middleware.CurrentStudent(r)

	courses, err := storage.EnrolledCourses(h.DB, student.ID)
	if err != nil {
		log.Printf("Ошибка загрузки курсов студента: %v", err)
	}

	data := h.Page(r, "لوحة الطالب")
	data.Courses = courses
	h.Render(w, r, "student_dashboard.html", data)
}

// HandleGoogleLogin — вход через Google (если OAuth настроен).
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.OAuth == nil {
		h.FlashRedirect(w, r, "warning", "تسجيل الدخول عبر Google غير متاح حالياً", "/student/login")
		return
	}
	url := h.OAuth.AuthCodeURL("random_state")
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.OAuth == nil {
		http.NotFound(w, r)
		return
	}
	if r.URL.Query().Get("state") != "random_state" {
		http.Error(w, "Invalid state", http.StatusUnauthorized)
		return
	}

	code := r.URL.Query().Get("code")
	token, err := h.OAuth.Exchange(context.Background(), code)
	if err != nil {
		http.Error(w, "Token exchange error", http.StatusBadRequest)
		return
	}

	client := h.OAuth.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		http.Error(w, "Google API error", http.StatusBadRequest)
		return
	}
	defer resp.Body.Close()

	var userInfo struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		http.Error(w, "JSON decode error", http.StatusInternalServerError)
		return
	}

	student, err := storage.UpsertGoogleStudent(h.DB, userInfo.Name, userInfo.Email, userInfo.Picture)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if !student.Active {
		h.FlashRedirect(w, r, "danger", "الحساب غير مفعل، يرجى التواصل مع الإدارة", "/student/login")
		return
	}

	h.LoginStudent(w, r, student, false)
	http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
}
