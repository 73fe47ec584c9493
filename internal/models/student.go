package models

import (
	"strings"
	"time"
)

// Student (Студент). Пароль храним только как bcrypt-хеш.
type Student struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name           string `gorm:"size:120;not null" json:"name"`
	Email          string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash   string `gorm:"size:128;not null" json:"-"`
	Phone          string `gorm:"size:20" json:"phone"`
	City           string `gorm:"size:100" json:"city"`
	Active         bool   `gorm:"default:true" json:"active"`
	ProfilePicture string `gorm:"size:300" json:"profile_picture"`

	Courses []Course `gorm:"many2many:student_course;" json:"-"`
}

// AvatarURL — ссылка на загруженное фото, либо сгенерированная заглушка.
// Для аккаунтов из Google в ProfilePicture лежит полный URL.
func (s *Student) AvatarURL() string {
	if strings.HasPrefix(s.ProfilePicture, "http") {
		return s.ProfilePicture
	}
	if s.ProfilePicture != "" {
		return "/uploads/" + s.ProfilePicture
	}
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(s.Name, " ", "+") + "&background=random"
}
