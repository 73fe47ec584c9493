package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/s/mathCourses/internal/database"
	"github.com/s/mathCourses/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func makeCourse(t *testing.T, db *gorm.DB, title, slug string) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:     title,
		Slug:      slug,
		ShortDesc: "وصف مختصر",
		Price:     100,
	}
	require.NoError(t, CreateCourse(db, course))
	return course
}

func makeStudent(t *testing.T, db *gorm.DB, name, email string) *models.Student {
	t.Helper()
	student := &models.Student{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Active:       true,
	}
	require.NoError(t, CreateStudent(db, student))
	return student
}
