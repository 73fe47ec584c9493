package storage

import (
	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

func CreateMessage(db *gorm.DB, msg *models.ContactMessage) error {
	return db.Create(msg).Error
}

func ListMessages(db *gorm.DB) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := db.Order("created_at desc").Find(&messages).Error
	return messages, err
}

// Stats — счетчики для панели администратора.
type Stats struct {
	TotalStudents int64
	TotalCourses  int64
	NewMessages   int64
}

func CountStats(db *gorm.DB) (Stats, error) {
	var s Stats
	if err := db.Model(&models.Student{}).Count(&s.TotalStudents).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Course{}).Count(&s.TotalCourses).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.ContactMessage{}).Count(&s.NewMessages).Error; err != nil {
		return s, err
	}
	return s, nil
}
