package models

import "time"

// Testimonial — отзыв о курсе (добавляет только админ). Rating 1-5.
type Testimonial struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	StudentName string `gorm:"size:120;not null" json:"student_name"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Rating      int    `gorm:"default:5" json:"rating"`
	CourseID    *uint  `json:"course_id"`

	Course *Course `json:"-"`
}
