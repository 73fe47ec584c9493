package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

// Имя сессионной куки и ключи внутри нее.
const (
	SessionName       = "session"
	SessionStudentKey = "student_id"
	SessionAdminKey   = "admin_logged_in"
)

type ctxKey int

const authKey ctxKey = 0

type authInfo struct {
	student *models.Student
	isAdmin bool
}

// Authenticate разрешает личность запроса один раз и кладет результат
// в контекст: дальше хендлеры не лезут в сессию и БД повторно.
func Authenticate(db *gorm.DB, store *sessions.CookieStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := store.Get(r, SessionName)

			var info authInfo
			if flag, ok := session.Values[SessionAdminKey].(bool); ok && flag {
				info.isAdmin = true
			}
			if id, ok := session.Values[SessionStudentKey].(uint); ok && id != 0 {
				var student models.Student
				if err := db.First(&student, id).Error; err == nil {
					info.student = &student
				}
			}

			ctx := context.WithValue(r.Context(), authKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentStudent — текущий студент или nil.
func CurrentStudent(r *http.Request) *models.Student {
	info, _ := r.Context().Value(authKey).(authInfo)
	return info.student
}

// IsAdmin — выставлен ли в сессии флаг администратора.
func IsAdmin(r *http.Request) bool {
	info, _ := r.Context().Value(authKey).(authInfo)
	return info.isAdmin
}

// RequireStudent пускает только аутентифицированных студентов.
func RequireStudent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentStudent(r) == nil {
			http.Redirect(w, r, "/student/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireAdmin защищает все маршруты /admin/...
// Без флага в сессии отдаем редирект на форму входа, а не содержимое.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r) {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}
