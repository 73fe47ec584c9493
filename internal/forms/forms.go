package forms

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

var validate = validator.New()

// messages переводит ошибки валидатора в сообщения для пользователя.
func messages(err error, labels map[string]string) []string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"بيانات غير صالحة"}
	}
	var out []string
	for _, fe := range ve {
		label := labels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			out = append(out, label+" مطلوب")
		case "email":
			out = append(out, "البريد الإلكتروني غير صالح")
		case "max":
			out = append(out, label+" طويل جداً")
		case "min", "gte", "lte", "oneof":
			out = append(out, label+" خارج النطاق المسموح")
		default:
			out = append(out, label+" غير صالح")
		}
	}
	return out
}

// ------------------------------------------------------------------
// Курс
// ------------------------------------------------------------------

type CourseForm struct {
	Title     string  `validate:"required,max=150"`
	Slug      string  `validate:"required,max=160"`
	ShortDesc string  `validate:"max=300"`
	Content   string  ``
	Price     float64 `validate:"gte=0"`
	Featured  bool    ``
}

var courseLabels = map[string]string{
	"Title":     "عنوان الدورة",
	"Slug":      "الرابط المختصر",
	"ShortDesc": "وصف مختصر",
	"Price":     "السعر",
}

func ParseCourseForm(r *http.Request) (*CourseForm, []string) {
	f := &CourseForm{
		Title:     strings.TrimSpace(r.FormValue("title")),
		Slug:      strings.TrimSpace(r.FormValue("slug")),
		ShortDesc: strings.TrimSpace(r.FormValue("short_desc")),
		Content:   r.FormValue("content"),
		Featured:  r.FormValue("featured") != "",
	}

	// Пустой slug выводим из названия; введенный — нормализуем до URL-safe.
	if f.Slug == "" {
		f.Slug = slug.Make(f.Title)
	} else {
		f.Slug = slug.Make(f.Slug)
	}

	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, []string{"السعر غير صالح"}
		}
		f.Price = price
	}

	if err := validate.Struct(f); err != nil {
		return f, messages(err, courseLabels)
	}
	return f, nil
}

// ------------------------------------------------------------------
// Обратная связь
// ------------------------------------------------------------------

type ContactForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

var contactLabels = map[string]string{
	"Name":    "الاسم",
	"Email":   "البريد الإلكتروني",
	"Message": "الرسالة",
}

func ParseContactForm(r *http.Request) (*ContactForm, []string) {
	f := &ContactForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}
	if err := validate.Struct(f); err != nil {
		return f, messages(err, contactLabels)
	}
	return f, nil
}

// ------------------------------------------------------------------
// Вход администратора
// ------------------------------------------------------------------

type AdminLoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func ParseAdminLoginForm(r *http.Request) (*AdminLoginForm, []string) {
	f := &AdminLoginForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(f); err != nil {
		return f, messages(err, map[string]string{
			"Username": "اسم المستخدم",
			"Password": "كلمة المرور",
		})
	}
	return f, nil
}

// ------------------------------------------------------------------
// Регистрация студента
// ------------------------------------------------------------------

type RegisterForm struct {
	Name     string `validate:"required,max=120"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"max=20"`
	Password string `validate:"required"`
	Confirm  string `validate:"required"`
	City     string `validate:"required,max=100"`
	CourseID uint   `validate:"required"`
}

var registerLabels = map[string]string{
	"Name":     "الاسم الكامل",
	"Email":    "البريد الإلكتروني",
	"Phone":    "رقم الهاتف",
	"Password": "كلمة المرور",
	"Confirm":  "تأكيد كلمة المرور",
	"City":     "المدينة",
	"CourseID": "الدورة المطلوبة",
}

func ParseRegisterForm(r *http.Request) (*RegisterForm, []string) {
	courseID, _ := strconv.ParseUint(r.FormValue("course"), 10, 32)
	f := &RegisterForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Password: r.FormValue("password"),
		Confirm:  r.FormValue("confirm"),
		City:     strings.TrimSpace(r.FormValue("city")),
		CourseID: uint(courseID),
	}

	var errs []string
	if err := validate.Struct(f); err != nil {
		errs = messages(err, registerLabels)
	}
	if f.Password != "" && f.Confirm != "" && f.Password != f.Confirm {
		errs = append(errs, "كلمات المرور غير متطابقة")
	}
	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

// ------------------------------------------------------------------
// Вход студента
// ------------------------------------------------------------------

type StudentLoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Remember bool   ``
}

func ParseStudentLoginForm(r *http.Request) (*StudentLoginForm, []string) {
	f := &StudentLoginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		Remember: r.FormValue("remember") != "",
	}
	if err := validate.Struct(f); err != nil {
		return f, messages(err, map[string]string{
			"Email":    "البريد الإلكتروني",
			"Password": "كلمة المرور",
		})
	}
	return f, nil
}

// ------------------------------------------------------------------
// Отзыв
// ------------------------------------------------------------------

type TestimonialForm struct {
	StudentName string `validate:"required,max=120"`
	Content     string `validate:"required"`
	Rating      int    `validate:"required,min=1,max=5"`
	CourseID    *uint  ``
}

var testimonialLabels = map[string]string{
	"StudentName": "اسم الطالب",
	"Content":     "المراجعة",
	"Rating":      "التقييم",
}

func ParseTestimonialForm(r *http.Request) (*TestimonialForm, []string) {
	rating, _ := strconv.Atoi(r.FormValue("rating"))
	f := &TestimonialForm{
		StudentName: strings.TrimSpace(r.FormValue("student_name")),
		Content:     strings.TrimSpace(r.FormValue("content")),
		Rating:      rating,
	}

	// 0 в выпадающем списке означает «общий отзыв», без привязки к курсу.
	if id, err := strconv.ParseUint(r.FormValue("course_id"), 10, 32); err == nil && id > 0 {
		cid := uint(id)
		f.CourseID = &cid
	}

	if err := validate.Struct(f); err != nil {
		return f, messages(err, testimonialLabels)
	}
	return f, nil
}

// ------------------------------------------------------------------
// Видео
// ------------------------------------------------------------------

type VideoForm struct {
	Title      string `validate:"required,max=150"`
	Timestamps string ``
}

func ParseVideoForm(r *http.Request) (*VideoForm, []string) {
	f := &VideoForm{
		Title:      strings.TrimSpace(r.FormValue("title")),
		Timestamps: strings.TrimSpace(r.FormValue("timestamps")),
	}

	var errs []string
	if err := validate.Struct(f); err != nil {
		errs = messages(err, map[string]string{"Title": "عنوان الفيديو"})
	}
	if f.Timestamps != "" && !json.Valid([]byte(f.Timestamps)) {
		errs = append(errs, "الطوابع الزمنية يجب أن تكون JSON صالح")
	}
	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

// ------------------------------------------------------------------
// Экзамен
// ------------------------------------------------------------------

const scheduledDateLayout = "2006-01-02 15:04"

type ExamForm struct {
	Title         string `validate:"required,max=150"`
	Description   string ``
	Questions     string `validate:"required"`
	ScheduledDate *time.Time
	ExamType      string `validate:"required,oneof=monthly post_lecture"`
}

var examLabels = map[string]string{
	"Title":     "عنوان الامتحان",
	"Questions": "الأسئلة",
	"ExamType":  "نوع الامتحان",
}

func ParseExamForm(r *http.Request) (*ExamForm, []string) {
	f := &ExamForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Questions:   strings.TrimSpace(r.FormValue("questions")),
		ExamType:    r.FormValue("exam_type"),
	}

	var errs []string
	if err := validate.Struct(f); err != nil {
		errs = messages(err, examLabels)
	}
	if f.Questions != "" && !json.Valid([]byte(f.Questions)) {
		errs = append(errs, "الأسئلة يجب أن تكون JSON صالح")
	}
	if raw := strings.TrimSpace(r.FormValue("scheduled_date")); raw != "" {
		t, err := time.Parse(scheduledDateLayout, raw)
		if err != nil {
			errs = append(errs, "تاريخ الامتحان غير صالح (YYYY-MM-DD HH:MM)")
		} else {
			f.ScheduledDate = &t
		}
	}
	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}
