package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/s/mathCourses/internal/forms"
	"github.com/s/mathCourses/internal/models"
	"github.com/s/mathCourses/internal/storage"
	"github.com/s/mathCourses/internal/uploads"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func idVar(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (s *Service) HandleCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := storage.ListCourses(s.DB)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := s.Page(r, "إدارة الدورات")
	data.Courses = courses
	s.Render(w, r, "adminCourses", data)
}

func (s *Service) HandleCourseDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	course, err := storage.CourseByID(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := s.Page(r, course.Title)
	data.Course = course
	data.Videos, _ = storage.VideosByCourse(s.DB, course.ID)
	data.Exams, _ = storage.ExamsByCourse(s.DB, course.ID)
	s.Render(w, r, "adminCourseDetail", data)
}

// HandleNewCourse — создание курса с необязательной обложкой.
func (s *Service) HandleNewCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := s.Page(r, "إضافة دورة جديدة")
		data.Course = &models.Course{}
		s.Render(w, r, "adminCourseForm", data)
		return
	}

	form, errs := forms.ParseCourseForm(r)
	if errs != nil {
		s.FlashErrors(w, r, errs, "/admin/course/new")
		return
	}

	course := models.Course{
		Title:     form.Title,
		Slug:      form.Slug,
		ShortDesc: form.ShortDesc,
		Content:   form.Content,
		Price:     form.Price,
		Featured:  form.Featured,
		Image:     s.saveImage(r, "image"),
	}

	if err := storage.CreateCourse(s.DB, &course); err != nil {
		if errors.Is(err, storage.ErrSlugTaken) {
			s.FlashRedirect(w, r, "danger", "الرابط المختصر مستخدم بالفعل", "/admin/course/new")
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	s.FlashRedirect(w, r, "success", "تم إضافة الدورة بنجاح", "/admin/courses")
}

// HandleEditCourse — полная замена редактируемых полей.
// Новая картинка заменяет имя файла; старый файл с диска не трогаем.
func (s *Service) HandleEditCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	course, err := storage.CourseByID(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	editURL := fmt.Sprintf("/admin/course/edit/%d", course.ID)

	if r.Method == http.MethodGet {
		data := s.Page(r, "تعديل الدورة")
		data.Course = course
		s.Render(w, r, "adminCourseForm", data)
		return
	}

	form, errs := forms.ParseCourseForm(r)
	if errs != nil {
		s.FlashErrors(w, r, errs, editURL)
		return
	}

	course.Title = form.Title
	course.Slug = form.Slug
	course.ShortDesc = form.ShortDesc
	course.Content = form.Content
	course.Price = form.Price
	course.Featured = form.Featured
	if filename := s.saveImage(r, "image"); filename != "" {
		course.Image = filename
	}

	if err := storage.UpdateCourse(s.DB, course); err != nil {
		if errors.Is(err, storage.ErrSlugTaken) {
			s.FlashRedirect(w, r, "danger", "الرابط المختصر مستخدم بالفعل", editURL)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	s.FlashRedirect(w, r, "success", "تم تحديث الدورة بنجاح", "/admin/courses")
}

// HandleDeleteCourse удаляет курс с каскадом и подчищает файлы.
func (s *Service) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	files, err := storage.DeleteCourse(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	for _, f := range files {
		uploads.Remove(s.Cfg.UploadFolder, f)
	}
	s.FlashRedirect(w, r, "info", "تم حذف الدورة", "/admin/courses")
}

// HandleClearCourses — необратимое удаление всех курсов (с confirm=yes).
func (s *Service) HandleClearCourses(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		s.FlashRedirect(w, r, "warning",
			"عملية خطيرة: أعد المحاولة مع confirm=yes لحذف جميع الدورات", "/admin")
		return
	}

	n, files, err := storage.DeleteAllCourses(s.DB)
	if err != nil {
		s.FlashRedirect(w, r, "danger", fmt.Sprintf("Error deleting courses: %v", err), "/admin")
		return
	}

	for _, f := range files {
		uploads.Remove(s.Cfg.UploadFolder, f)
	}
	s.FlashRedirect(w, r, "success", fmt.Sprintf("Successfully deleted %d courses.", n), "/admin")
}

// ------------------------------------------------------------------
// Видео курса
// ------------------------------------------------------------------

func (s *Service) HandleCourseVideos(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	course, err := storage.CourseByID(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	videosURL := fmt.Sprintf("/admin/course/%d/videos", course.ID)

	if r.Method == http.MethodPost {
		form, errs := forms.ParseVideoForm(r)
		if errs != nil {
			s.FlashErrors(w, r, errs, videosURL)
			return
		}

		_, fh, err := r.FormFile("file")
		if err != nil {
			s.FlashRedirect(w, r, "danger", "ملف الفيديو مطلوب", videosURL)
			return
		}

		// TODO: ввести белый список расширений и для видео —
		// сейчас, в отличие от картинок, принимается любой файл.
		filename, err := uploads.Save(fh, s.Cfg.UploadFolder)
		if err != nil {
			s.FlashRedirect(w, r, "danger", "حدث خطأ أثناء حفظ الملف", videosURL)
			return
		}

		video := models.Video{
			Title:    form.Title,
			FilePath: filename,
			CourseID: course.ID,
		}
		if form.Timestamps != "" {
			video.Timestamps = datatypes.JSON(form.Timestamps)
		}
		if err := storage.CreateVideo(s.DB, &video); err != nil {
			s.FlashRedirect(w, r, "danger", "حدث خطأ، حاول مرة أخرى", videosURL)
			return
		}
		s.FlashRedirect(w, r, "success", "تم إضافة الفيديو بنجاح", videosURL)
		return
	}

	data := s.Page(r, course.Title)
	data.Course = course
	data.Videos, _ = storage.VideosByCourse(s.DB, course.ID)
	s.Render(w, r, "adminCourseVideos", data)
}

// HandleDeleteVideo удаляет видео по его id. Курс из URL используется
// только для редиректа и нарочно не сверяется с video.CourseID.
func (s *Service) HandleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	courseID, ok := idVar(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	videoID, ok := idVar(r, "video_id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	filename, err := storage.DeleteVideo(s.DB, videoID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	uploads.Remove(s.Cfg.UploadFolder, filename)
	s.FlashRedirect(w, r, "success", "تم حذف الفيديو بنجاح",
		fmt.Sprintf("/admin/course/%d/videos", courseID))
}

// ------------------------------------------------------------------
// Экзамены курса
// ------------------------------------------------------------------

func (s *Service) HandleCourseExams(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	course, err := storage.CourseByID(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	examsURL := fmt.Sprintf("/admin/course/%d/exams", course.ID)

	if r.Method == http.MethodPost {
		form, errs := forms.ParseExamForm(r)
		if errs != nil {
			s.FlashErrors(w, r, errs, examsURL)
			return
		}

		exam := models.Exam{
			Title:         form.Title,
			Description:   form.Description,
			Questions:     datatypes.JSON(form.Questions),
			ScheduledDate: form.ScheduledDate,
			ExamType:      form.ExamType,
			CourseID:      course.ID,
		}
		if err := storage.CreateExam(s.DB, &exam); err != nil {
			s.FlashRedirect(w, r, "danger", fmt.Sprintf("حدث خطأ: %v", err), examsURL)
			return
		}
		s.FlashRedirect(w, r, "success", "تم إضافة الامتحان بنجاح", examsURL)
		return
	}

	data := s.Page(r, course.Title)
	data.Course = course
	data.Exams, _ = storage.ExamsByCourse(s.DB, course.ID)
	s.Render(w, r, "adminCourseExams", data)
}

// saveImage сохраняет картинку из формы, если она есть и проходит
// белый список расширений. Пустая строка — «файла нет».
func (s *Service) saveImage(r *http.Request, field string) string {
	file, fh, err := r.FormFile(field)
	if err != nil {
		return ""
	}
	file.Close()

	if !uploads.AllowedImage(fh.Filename) {
		return ""
	}
	filename, err := uploads.Save(fh, s.Cfg.UploadFolder)
	if err != nil {
		return ""
	}
	return filename
}
