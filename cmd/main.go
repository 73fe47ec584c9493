package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"github.com/s/mathCourses/internal/auth"
	"github.com/s/mathCourses/internal/config"
	"github.com/s/mathCourses/internal/database"
	"github.com/s/mathCourses/internal/handlers"
	"github.com/s/mathCourses/internal/handlers/admin"
	"github.com/s/mathCourses/internal/middleware"
)

func main() {
	// ---------------------------
	// 0. Загрузка переменных окружения
	// ---------------------------
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: Не удалось загрузить файл .env. Используются системные переменные.")
	}

	cfg := config.Load()

	// ---------------------------
	// 1. Подключаем GORM (База данных)
	// ---------------------------
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Ошибка подключения к БД:", err)
	}

	// ---------------------------
	// 2. Делаем миграции
	// ---------------------------
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Ошибка миграции:", err)
	}

	// ---------------------------
	// 3. Запускаем сиды (демо-курсы в пустой базе)
	// ---------------------------
	if err := database.Seed(db); err != nil {
		log.Println("Ошибка сидов:", err)
	}

	// ---------------------------
	// 4. Папка загрузок
	// ---------------------------
	if err := os.MkdirAll(cfg.UploadFolder, 0o755); err != nil {
		log.Fatal("Ошибка создания папки загрузок:", err)
	}

	// ---------------------------
	// 5. Google OAuth (не обязателен)
	// ---------------------------
	var oauthConfig *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" && cfg.GoogleRedirectURL != "" {
		oauthConfig = auth.InitGoogleOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	} else {
		log.Println("Внимание: переменные GOOGLE_... не заданы, вход через Google отключен.")
	}

	// ---------------------------
	// 6. Настройка сессий
	// ---------------------------
	if cfg.SecretKey == "fadel-adel-math-teacher-2024" {
		log.Println("Внимание: SECRET_KEY не задан, используется дефолтный. Только для разработки!")
	}
	store := sessions.NewCookieStore([]byte(cfg.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false, // Поставьте true, если используете HTTPS
	}

	// ---------------------------
	// 7. Инициализация Хендлеров
	// ---------------------------
	h := handlers.NewHandler(db, store, cfg, oauthConfig)

	adminService := admin.Service{
		Handler: *h,
	}

	// ---------------------------
	// 8. Роутинг с Gorilla Mux
	// ---------------------------
	r := mux.NewRouter()
	r.Use(middleware.Authenticate(db, store))

	// --- Статические файлы и загрузки ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadFolder))))

	// --- Публичные маршруты ---
	r.HandleFunc("/", h.HandleIndex).Methods("GET")
	r.HandleFunc("/about", h.HandleAbout).Methods("GET")
	r.HandleFunc("/courses", h.HandleCourses).Methods("GET")
	r.HandleFunc("/course/{slug}", h.HandleCourseDetail).Methods("GET")
	r.HandleFunc("/contact", h.HandleContact).Methods("GET", "POST")

	// --- Студенты ---
	r.HandleFunc("/register", h.HandleRegister).Methods("GET", "POST")
	r.HandleFunc("/student/login", h.HandleStudentLogin).Methods("GET", "POST")
	r.HandleFunc("/student/logout", h.HandleStudentLogout).Methods("GET")
	r.HandleFunc("/student/dashboard", middleware.RequireStudent(h.HandleStudentDashboard)).Methods("GET")
	r.HandleFunc("/course/{slug}/subscribe", middleware.RequireStudent(h.HandleSubscribe)).Methods("POST")
	r.HandleFunc("/auth/google/login", h.HandleGoogleLogin).Methods("GET")
	r.HandleFunc("/auth/google/callback", h.HandleGoogleCallback).Methods("GET")

	// --- АДМИН ПАНЕЛЬ ---
	r.HandleFunc("/admin/login", adminService.HandleLogin).Methods("GET", "POST")
	r.HandleFunc("/admin/logout", adminService.HandleLogout).Methods("GET")
	r.HandleFunc("/admin", middleware.RequireAdmin(adminService.HandleDashboard)).Methods("GET")
	r.HandleFunc("/admin/stats", middleware.RequireAdmin(adminService.HandleStats)).Methods("GET")
	r.HandleFunc("/admin/messages", middleware.RequireAdmin(adminService.HandleMessages)).Methods("GET")

	// --- Курсы ---
	r.HandleFunc("/admin/courses", middleware.RequireAdmin(adminService.HandleCourses)).Methods("GET")
	r.HandleFunc("/admin/course/new", middleware.RequireAdmin(adminService.HandleNewCourse)).Methods("GET", "POST")
	r.HandleFunc("/admin/course/edit/{id}", middleware.RequireAdmin(adminService.HandleEditCourse)).Methods("GET", "POST")
	r.HandleFunc("/admin/course/delete/{id}", middleware.RequireAdmin(adminService.HandleDeleteCourse)).Methods("GET")
	r.HandleFunc("/admin/course/{id}", middleware.RequireAdmin(adminService.HandleCourseDetail)).Methods("GET")
	r.HandleFunc("/admin/course/{id}/videos", middleware.RequireAdmin(adminService.HandleCourseVideos)).Methods("GET", "POST")
	r.HandleFunc("/admin/course/{id}/video/{video_id}/delete", middleware.RequireAdmin(adminService.HandleDeleteVideo)).Methods("POST")
	r.HandleFunc("/admin/course/{id}/exams", middleware.RequireAdmin(adminService.HandleCourseExams)).Methods("GET", "POST")
	r.HandleFunc("/admin/clear-courses", middleware.RequireAdmin(adminService.HandleClearCourses)).Methods("GET")

	// --- Студенты (админ) ---
	r.HandleFunc("/admin/students", middleware.RequireAdmin(adminService.HandleStudents)).Methods("GET")
	r.HandleFunc("/admin/students/export", middleware.RequireAdmin(adminService.HandleExportStudents)).Methods("GET")
	r.HandleFunc("/admin/student/toggle_active/{id}", middleware.RequireAdmin(adminService.HandleToggleStudent)).Methods("GET")
	r.HandleFunc("/admin/student/delete/{id}", middleware.RequireAdmin(adminService.HandleDeleteStudent)).Methods("GET")
	r.HandleFunc("/admin/delete-all-users", middleware.RequireAdmin(adminService.HandleDeleteAllStudents)).Methods("GET")

	// --- Отзывы ---
	r.HandleFunc("/admin/testimonials", middleware.RequireAdmin(adminService.HandleTestimonials)).Methods("GET")
	r.HandleFunc("/admin/testimonial/new", middleware.RequireAdmin(adminService.HandleNewTestimonial)).Methods("GET", "POST")

	// ---------------------------
	// 9. Запуск сервера
	// ---------------------------
	fmt.Printf("Сервер запущен: http://localhost:%s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
