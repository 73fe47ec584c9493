package storage

import (
	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

func CreateVideo(db *gorm.DB, video *models.Video) error {
	return db.Create(video).Error
}

func VideosByCourse(db *gorm.DB, courseID uint) ([]models.Video, error) {
	var videos []models.Video
	err := db.Where("course_id = ?", courseID).Order("created_at desc").Find(&videos).Error
	return videos, err
}

func VideoByID(db *gorm.DB, id uint) (*models.Video, error) {
	var video models.Video
	if err := db.First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// DeleteVideo удаляет запись и возвращает имя файла для удаления с диска.
func DeleteVideo(db *gorm.DB, id uint) (string, error) {
	video, err := VideoByID(db, id)
	if err != nil {
		return "", err
	}
	if err := db.Delete(video).Error; err != nil {
		return "", err
	}
	return video.FilePath, nil
}
