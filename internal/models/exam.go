package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	ExamTypeMonthly     = "monthly"
	ExamTypePostLecture = "post_lecture"
)

// Exam — экзамен курса. Вопросы лежат в JSON-колонке.
type Exam struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title         string         `gorm:"size:150;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Questions     datatypes.JSON `gorm:"not null" json:"questions"`
	ScheduledDate *time.Time     `json:"scheduled_date"`
	ExamType      string         `gorm:"size:50;default:post_lecture" json:"exam_type"`
	CourseID      uint           `gorm:"not null" json:"course_id"`

	Course *Course `json:"-"`
}

// ExamQuestion — один вопрос экзамена.
type ExamQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// QuestionList разбирает JSON-колонку с вопросами.
// Битый JSON не должен ронять страницу — возвращаем пустой список.
func (e *Exam) QuestionList() []ExamQuestion {
	var qs []ExamQuestion
	if err := json.Unmarshal(e.Questions, &qs); err != nil || qs == nil {
		return []ExamQuestion{}
	}
	return qs
}
