package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/s/mathCourses/internal/models"
)

func TestDeleteVideoReturnsFilePath(t *testing.T) {
	db := setupDB(t)
	course := makeCourse(t, db, "الجبر", "algebra")
	require.NoError(t, CreateVideo(db, &models.Video{Title: "درس 1", FilePath: "lesson1.mp4", CourseID: course.ID}))

	videos, err := VideosByCourse(db, course.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)

	path, err := DeleteVideo(db, videos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "lesson1.mp4", path)

	_, err = VideoByID(db, videos[0].ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestExamsByCourse(t *testing.T) {
	db := setupDB(t)
	course := makeCourse(t, db, "الجبر", "algebra")
	other := makeCourse(t, db, "الهندسة", "geometry")

	require.NoError(t, CreateExam(db, &models.Exam{
		Title:     "اختبار شهري",
		Questions: datatypes.JSON(`[{"question":"2+2","options":["3","4"],"answer":"4"}]`),
		ExamType:  models.ExamTypeMonthly,
		CourseID:  course.ID,
	}))
	require.NoError(t, CreateExam(db, &models.Exam{
		Title:     "اختبار آخر",
		Questions: datatypes.JSON("[]"),
		CourseID:  other.ID,
	}))

	exams, err := ExamsByCourse(db, course.ID)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, models.ExamTypeMonthly, exams[0].ExamType)
	assert.Len(t, exams[0].QuestionList(), 1)
}
