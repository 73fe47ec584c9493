package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect открывает подключение к БД.
// Если DATABASE_URL не задан, используем локальный sqlite-файл —
// удобно для разработки без Docker.
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		log.Println("DATABASE_URL не задан, используем sqlite (data.db)")
		return gorm.Open(sqlite.Open("data.db"), &gorm.Config{})
	}

	var db *gorm.DB
	var err error

	// Попытки подключения (Docker-база иногда «просыпается» пару секунд)
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err == nil {
			log.Println("✅ Успешное подключение к базе данных!")
			return db, nil
		}

		log.Printf("⚠️ Попытка подключения %d не удалась, ждем... (%v)", i+1, err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("не удалось подключиться к БД после нескольких попыток: %w", err)
}
