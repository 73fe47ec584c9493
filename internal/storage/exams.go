package storage

import (
	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

func CreateExam(db *gorm.DB, exam *models.Exam) error {
	return db.Create(exam).Error
}

func ExamsByCourse(db *gorm.DB, courseID uint) ([]models.Exam, error) {
	var exams []models.Exam
	err := db.Where("course_id = ?", courseID).Order("created_at desc").Find(&exams).Error
	return exams, err
}
