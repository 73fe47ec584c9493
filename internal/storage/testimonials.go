package storage

import (
	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

func CreateTestimonial(db *gorm.DB, t *models.Testimonial) error {
	return db.Create(t).Error
}

func ListTestimonials(db *gorm.DB) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := db.Preload("Course").Order("created_at desc").Find(&testimonials).Error
	return testimonials, err
}

// LatestTestimonials — отзывы для главной страницы.
func LatestTestimonials(db *gorm.DB, limit int) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := db.Limit(limit).Find(&testimonials).Error
	return testimonials, err
}
