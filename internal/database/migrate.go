package database

import (
	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Course{},
		&models.Student{},
		&models.ContactMessage{},
		&models.Testimonial{},
		&models.Video{},
		&models.Exam{},
	)
}
