package storage

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/s/mathCourses/internal/auth"
	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already in use")

// CreateStudent создает студента, явно проверив уникальность email —
// второй аккаунт на тот же адрес создать нельзя.
func CreateStudent(db *gorm.DB, student *models.Student) error {
	var existing models.Student
	err := db.Where("email = ?", student.Email).First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(student).Error
}

func StudentByEmail(db *gorm.DB, email string) (*models.Student, error) {
	var student models.Student
	if err := db.Where("email = ?", email).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func StudentByID(db *gorm.DB, id uint) (*models.Student, error) {
	var student models.Student
	if err := db.First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// SearchStudents — список студентов, отсортированный по имени.
// Непустой search фильтрует по подстроке в имени ИЛИ email (без учета регистра).
func SearchStudents(db *gorm.DB, search string) ([]models.Student, error) {
	q := db.Order("name")
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	var students []models.Student
	err := q.Find(&students).Error
	return students, err
}

func ListStudents(db *gorm.DB) ([]models.Student, error) {
	var students []models.Student
	err := db.Find(&students).Error
	return students, err
}

// ToggleStudentActive переключает флаг блокировки аккаунта.
func ToggleStudentActive(db *gorm.DB, id uint) (*models.Student, error) {
	student, err := StudentByID(db, id)
	if err != nil {
		return nil, err
	}
	student.Active = !student.Active
	// Явный Update: gorm-дефолт true затер бы false при Save нулевого значения.
	if err := db.Model(student).Update("active", student.Active).Error; err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent удаляет студента и его записи на курсы.
// Возвращает имя файла аватара для удаления с диска.
func DeleteStudent(db *gorm.DB, id uint) (string, error) {
	student, err := StudentByID(db, id)
	if err != nil {
		return "", err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM student_course WHERE student_id = ?", student.ID).Error; err != nil {
			return err
		}
		return tx.Delete(student).Error
	})
	if err != nil {
		return "", err
	}
	return student.ProfilePicture, nil
}

// DeleteAllStudents — опасная массовая операция из админки.
func DeleteAllStudents(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&models.Student{}).Count(&count).Error; err != nil {
		return 0, err
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM student_course").Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Student{}).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Enroll записывает студента на курс. Повторная запись — no-op:
// возвращаем false, чтобы показать информационное сообщение вместо ошибки.
func Enroll(db *gorm.DB, studentID, courseID uint) (bool, error) {
	var n int64
	err := db.Table("student_course").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	student := models.Student{ID: studentID}
	course := models.Course{ID: courseID}
	if err := db.Model(&student).Association("Courses").Append(&course); err != nil {
		return false, err
	}
	return true, nil
}

// EnrolledCourses — курсы студента для его кабинета.
func EnrolledCourses(db *gorm.DB, studentID uint) ([]models.Course, error) {
	var student models.Student
	if err := db.Preload("Courses").First(&student, studentID).Error; err != nil {
		return nil, err
	}
	return student.Courses, nil
}

// UpsertGoogleStudent находит студента по email или создает нового
// при первом входе через Google. Пароль такому аккаунту не известен —
// ставим хеш от случайной строки.
func UpsertGoogleStudent(db *gorm.DB, name, email, picture string) (*models.Student, error) {
	var student models.Student
	err := db.Where("email = ?", email).First(&student).Error

	if err == nil {
		updates := map[string]interface{}{"name": name}
		if picture != "" && student.ProfilePicture == "" {
			updates["profile_picture"] = picture
		}
		if err := db.Model(&student).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &student, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}
	student = models.Student{
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		Active:         true,
		ProfilePicture: picture,
	}
	if err := db.Create(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
