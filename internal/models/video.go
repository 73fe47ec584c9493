package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Video — видеоурок курса. FilePath указывает на файл в папке загрузок.
type Video struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title      string         `gorm:"size:150;not null" json:"title"`
	FilePath   string         `gorm:"size:300;not null" json:"file_path"`
	Timestamps datatypes.JSON `json:"timestamps"`
	CourseID   uint           `gorm:"not null" json:"course_id"`

	Course *Course `json:"-"`
}

// VideoTimestamp — метка времени внутри видео.
type VideoTimestamp struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

// TimestampList разбирает JSON-колонку. Битый или пустой JSON — пустой список.
func (v *Video) TimestampList() []VideoTimestamp {
	var ts []VideoTimestamp
	if err := json.Unmarshal(v.Timestamps, &ts); err != nil || ts == nil {
		return []VideoTimestamp{}
	}
	return ts
}
