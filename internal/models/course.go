package models

import (
	"time"
)

// Course (Курс)
type Course struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title     string  `gorm:"size:150;not null" json:"title"`
	Slug      string  `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	ShortDesc string  `gorm:"size:300" json:"short_desc"`
	Content   string  `gorm:"type:text" json:"content"`
	Price     float64 `gorm:"default:0" json:"price"`
	Image     string  `gorm:"size:300" json:"image"`
	Featured  bool    `gorm:"default:false" json:"featured"`

	Students     []Student     `gorm:"many2many:student_course;" json:"-"`
	Testimonials []Testimonial `json:"-"`
	Videos       []Video       `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Exams        []Exam        `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
