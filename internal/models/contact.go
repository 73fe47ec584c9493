package models

import "time"

// ContactMessage — сообщение с публичной формы обратной связи.
// Создается один раз, маршрутов редактирования/удаления нет.
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name    string `gorm:"size:120" json:"name"`
	Email   string `gorm:"size:120" json:"email"`
	Message string `gorm:"type:text" json:"message"`
}
