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

func TestCreateCourseSlugTaken(t *testing.T) {
	db := setupDB(t)
	makeCourse(t, db, "الجبر", "algebra")

	dup := &models.Course{Title: "جبر متقدم", Slug: "algebra", ShortDesc: "x", Price: 50}
	err := CreateCourse(db, dup)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestUpdateCourseSlugConflict(t *testing.T) {
	db := setupDB(t)
	makeCourse(t, db, "الجبر", "algebra")
	second := makeCourse(t, db, "الهندسة", "geometry")

	second.Slug = "algebra"
	assert.ErrorIs(t, UpdateCourse(db, second), ErrSlugTaken)

	// Сохранение с собственным slug конфликтом не считается.
	second.Slug = "geometry"
	second.Title = "الهندسة التحليلية"
	assert.NoError(t, UpdateCourse(db, second))
}

func TestFeaturedCoursesLimit(t *testing.T) {
	db := setupDB(t)
	for i, slug := range []string{"c1", "c2", "c3", "c4"} {
		course := makeCourse(t, db, "دورة", slug)
		if i < 3 {
			require.NoError(t, db.Model(course).Update("featured", true).Error)
		}
	}

	featured, err := FeaturedCourses(db, 2)
	require.NoError(t, err)
	assert.Len(t, featured, 2)
	for _, c := range featured {
		assert.True(t, c.Featured)
	}
}

func TestCourseBySlugNotFound(t *testing.T) {
	db := setupDB(t)
	_, err := CourseBySlug(db, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteCourseCascade(t *testing.T) {
	db := setupDB(t)
	course := makeCourse(t, db, "الجبر", "algebra")
	course.Image = "algebra.png"
	require.NoError(t, db.Save(course).Error)

	other := makeCourse(t, db, "الهندسة", "geometry")

	require.NoError(t, CreateVideo(db, &models.Video{Title: "درس 1", FilePath: "v1.mp4", CourseID: course.ID}))
	require.NoError(t, CreateVideo(db, &models.Video{Title: "درس آخر", FilePath: "v2.mp4", CourseID: other.ID}))
	require.NoError(t, CreateExam(db, &models.Exam{Title: "اختبار", Questions: datatypes.JSON("[]"), CourseID: course.ID}))

	require.NoError(t, CreateTestimonial(db, &models.Testimonial{StudentName: "أحمد", Content: "رائع", Rating: 5, CourseID: &course.ID}))

	student := makeStudent(t, db, "سارة", "sara@example.com")
	added, err := Enroll(db, student.ID, course.ID)
	require.NoError(t, err)
	require.True(t, added)

	files, err := DeleteCourse(db, course.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"algebra.png", "v1.mp4"}, files)

	_, err = CourseByID(db, course.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// Видео чужого курса не тронуто.
	videos, err := VideosByCourse(db, other.ID)
	require.NoError(t, err)
	assert.Len(t, videos, 1)

	// Отзыв остался, но стал общим.
	testimonials, err := ListTestimonials(db)
	require.NoError(t, err)
	require.Len(t, testimonials, 1)
	assert.Nil(t, testimonials[0].CourseID)

	// Запись студента на курс снята.
	courses, err := EnrolledCourses(db, student.ID)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestDeleteAllCourses(t *testing.T) {
	db := setupDB(t)
	c1 := makeCourse(t, db, "الجبر", "algebra")
	makeCourse(t, db, "الهندسة", "geometry")
	require.NoError(t, CreateVideo(db, &models.Video{Title: "درس", FilePath: "v.mp4", CourseID: c1.ID}))

	count, files, err := DeleteAllCourses(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Contains(t, files, "v.mp4")

	courses, err := ListCourses(db)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestListCoursesByTitleOrder(t *testing.T) {
	db := setupDB(t)
	makeCourse(t, db, "b course", "b")
	makeCourse(t, db, "a course", "a")

	courses, err := ListCoursesByTitle(db)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "a course", courses[0].Title)
}
