package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"

	"github.com/s/mathCourses/internal/config"
	"github.com/s/mathCourses/internal/middleware"
	"github.com/s/mathCourses/internal/models"
	"github.com/s/mathCourses/internal/storage"

	"gorm.io/gorm"
)

type Handler struct {
	DB    *gorm.DB
	Store *sessions.CookieStore
	Cfg   *config.Config
	OAuth *oauth2.Config
	Tmpl  *template.Template
}

func NewHandler(db *gorm.DB, store *sessions.CookieStore, cfg *config.Config, oauthConfig *oauth2.Config) *Handler {

	funcMap := template.FuncMap{
		"add": func(i, j int) int {
			return i + j
		},
		"seq": func(n int) []int {
			s := make([]int, n)
			for i := range s {
				s[i] = i
			}
			return s
		},
		"formatTime": func(t *time.Time) string {
			if t == nil {
				return "—"
			}
			return t.Format("02.01.2006 15:04")
		},
		"formatDate": func(t time.Time) string {
			return t.Format("02.01.2006 15:04")
		},
		"formatPrice": func(p float64) string {
			return fmt.Sprintf("%.0f", p)
		},
	}

	tmpl := template.New("").Funcs(funcMap)

	// 1. Парсим файлы в корне папки шаблонов (index.html и т.д.)
	_, err := tmpl.ParseGlob(filepath.Join(cfg.TemplatesDir, "*.html"))
	if err != nil {
		// Не фатально, если в корне нет html, но полезно знать
		log.Println("Warning parsing root templates:", err)
	}

	// 2. Парсим файлы во вложенных папках (template/admin/...)
	_, err = tmpl.ParseGlob(filepath.Join(cfg.TemplatesDir, "**", "*.html"))
	if err != nil {
		log.Fatal("Error parsing nested templates:", err)
	}

	return &Handler{
		DB:    db,
		Store: store,
		Cfg:   cfg,
		OAuth: oauthConfig,
		Tmpl:  tmpl,
	}
}

// Flash — одно всплывающее сообщение (категория + текст).
type Flash struct {
	Category string
	Text     string
}

type PageData struct {
	Title       string
	Student     *models.Student
	IsAdmin     bool
	CurrentPath string
	Flashes     []Flash
	Search      string

	Courses      []models.Course
	Course       *models.Course
	Testimonials []models.Testimonial
	Students     []models.Student
	Messages     []models.ContactMessage
	Videos       []models.Video
	Exams        []models.Exam
	Stats        storage.Stats
	Enrolled     bool
}

// Page собирает общие данные страницы из контекста запроса.
func (h *Handler) Page(r *http.Request, title string) *PageData {
	return &PageData{
		Title:       title,
		Student:     middleware.CurrentStudent(r),
		IsAdmin:     middleware.IsAdmin(r),
		CurrentPath: r.URL.Path,
	}
}

// Render выполняет шаблон, предварительно забрав flash-сообщения из сессии.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	session, _ := h.Store.Get(r, middleware.SessionName)
	for _, raw := range session.Flashes() {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		category, text, found := strings.Cut(s, "|")
		if !found {
			category, text = "info", s
		}
		data.Flashes = append(data.Flashes, Flash{Category: category, Text: text})
	}
	session.Save(r, w)

	if err := h.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Ошибка рендеринга шаблона %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// AddFlash кладет сообщение в сессию (покажется на следующей странице).
func (h *Handler) AddFlash(w http.ResponseWriter, r *http.Request, category, text string) {
	session, _ := h.Store.Get(r, middleware.SessionName)
	session.AddFlash(category + "|" + text)
	session.Save(r, w)
}

// FlashRedirect — сообщение + редирект, обычный исход POST-обработчиков.
func (h *Handler) FlashRedirect(w http.ResponseWriter, r *http.Request, category, text, url string) {
	h.AddFlash(w, r, category, text)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// FlashErrors — все ошибки валидации разом, затем редирект обратно на форму.
func (h *Handler) FlashErrors(w http.ResponseWriter, r *http.Request, errs []string, url string) {
	session, _ := h.Store.Get(r, middleware.SessionName)
	for _, e := range errs {
		session.AddFlash("danger|" + e)
	}
	session.Save(r, w)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// LoginStudent сохраняет личность студента в сессии.
// remember=true продлевает куку на 30 дней, иначе — до закрытия браузера.
func (h *Handler) LoginStudent(w http.ResponseWriter, r *http.Request, student *models.Student, remember bool) {
	session, _ := h.Store.Get(r, middleware.SessionName)
	session.Values[middleware.SessionStudentKey] = student.ID

	maxAge := 0
	if remember {
		maxAge = 86400 * 30
	}
	session.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   maxAge,
	}
	session.Save(r, w)
}
