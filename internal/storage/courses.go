package storage

import (
	"errors"

	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

var ErrSlugTaken = errors.New("slug already in use")

func ListCourses(db *gorm.DB) ([]models.Course, error) {
	var courses []models.Course
	err := db.Order("created_at desc").Find(&courses).Error
	return courses, err
}

// ListCoursesByTitle — для выпадающих списков в формах.
func ListCoursesByTitle(db *gorm.DB) ([]models.Course, error) {
	var courses []models.Course
	err := db.Order("title").Find(&courses).Error
	return courses, err
}

// FeaturedCourses — избранные курсы для главной страницы.
func FeaturedCourses(db *gorm.DB, limit int) ([]models.Course, error) {
	var courses []models.Course
	err := db.Where("featured = ?", true).Limit(limit).Find(&courses).Error
	return courses, err
}

func CourseBySlug(db *gorm.DB, slug string) (*models.Course, error) {
	var course models.Course
	if err := db.Where("slug = ?", slug).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func CourseByID(db *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse создает курс, предварительно проверив уникальность slug —
// пользователю нужна внятная ошибка, а не нарушение constraint.
func CreateCourse(db *gorm.DB, course *models.Course) error {
	var existing models.Course
	err := db.Where("slug = ?", course.Slug).First(&existing).Error
	if err == nil {
		return ErrSlugTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(course).Error
}

func UpdateCourse(db *gorm.DB, course *models.Course) error {
	var existing models.Course
	err := db.Where("slug = ? AND id <> ?", course.Slug, course.ID).First(&existing).Error
	if err == nil {
		return ErrSlugTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Save(course).Error
}

// DeleteCourse удаляет курс вместе с его видео и экзаменами (каскад выполняем
// явно, в одной транзакции). Возвращает имена файлов, которые остались
// в папке загрузок и которые вызывающий код должен удалить.
func DeleteCourse(db *gorm.DB, id uint) ([]string, error) {
	var course models.Course
	if err := db.Preload("Videos").First(&course, id).Error; err != nil {
		return nil, err
	}

	var files []string
	if course.Image != "" {
		files = append(files, course.Image)
	}
	for _, v := range course.Videos {
		files = append(files, v.FilePath)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Video{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Exam{}).Error; err != nil {
			return err
		}
		// Отзывы курса не удаляем — они становятся «общими».
		if err := tx.Model(&models.Testimonial{}).Where("course_id = ?", course.ID).
			Update("course_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM student_course WHERE course_id = ?", course.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// DeleteAllCourses — опасная массовая операция из админки.
// Возвращает число удаленных курсов и файлы на удаление.
func DeleteAllCourses(db *gorm.DB) (int64, []string, error) {
	var courses []models.Course
	if err := db.Preload("Videos").Find(&courses).Error; err != nil {
		return 0, nil, err
	}

	var files []string
	for _, c := range courses {
		if c.Image != "" {
			files = append(files, c.Image)
		}
		for _, v := range c.Videos {
			files = append(files, v.FilePath)
		}
	}

	count := int64(len(courses))
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Video{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Exam{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Testimonial{}).Where("course_id IS NOT NULL").
			Update("course_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM student_course").Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Course{}).Error
	})
	if err != nil {
		return 0, nil, err
	}
	return count, files, nil
}
