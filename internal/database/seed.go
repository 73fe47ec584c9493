package database

import (
	"github.com/s/mathCourses/internal/models"
	"gorm.io/gorm"
)

// Seed наполняет пустую базу демонстрационными курсами и отзывами.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	courses := []models.Course{
		{
			Title:     "أساسيات الرياضيات",
			Slug:      "math-basics-high-school",
			ShortDesc: "دورة شاملة في أساسيات الرياضيات للصف الأول والثاني الثانوي",
			Content:   "دورة متكاملة تغطي جميع أساسيات الرياضيات من الجبر إلى الهندسة مع حلول خطوة بخطوة",
			Price:     150.0,
			Featured:  true,
		},
		{
			Title:     "الجبر والمعادلات المتقدمة",
			Slug:      "advanced-algebra-equations",
			ShortDesc: "تعلم الجبر المتقدم والمعادلات بطريقة مبسطة وممتعة",
			Content:   "دورة تفصيلية في الجبر المتقدم تشمل المعادلات التربيعية والدوال والمخططات البيانية",
			Price:     200.0,
			Featured:  true,
		},
		{
			Title:     "الهندسة التحليلية والتطبيقات",
			Slug:      "analytical-geometry-applications",
			ShortDesc: "أساسيات الهندسة التحليلية والتطبيقات العملية",
			Content:   "دورة شاملة في الهندسة التحليلية مع التطبيقات العملية والمسائل المتنوعة والحلول الشاملة",
			Price:     250.0,
		},
		{
			Title:     "التفاضل والتكامل",
			Slug:      "calculus-differentiation-integration",
			ShortDesc: "مفاهيم التفاضل والتكامل بطريقة مبسطة",
			Content:   "دورة شاملة في التفاضل والتكامل مع التطبيقات العملية والأمثلة المحلولة خطوة بخطوة",
			Price:     300.0,
			Featured:  true,
		},
		{
			Title:     "الإحصاء والاحتمالات",
			Slug:      "statistics-probability",
			ShortDesc: "أساسيات الإحصاء والاحتمالات للثانوية",
			Content:   "دورة متكاملة في الإحصاء والاحتمالات مع التطبيقات العملية وتحليل البيانات",
			Price:     180.0,
		},
		{
			Title:     "مراجعة شاملة للثانوية",
			Slug:      "comprehensive-secondary-review",
			ShortDesc: "مراجعة شاملة لجميع مواضيع الرياضيات الثانوية",
			Content:   "دورة مراجعة شاملة تغطي جميع المواضيع الرئيسية مع امتحانات تجريبية ونصائح للنجاح",
			Price:     350.0,
			Featured:  true,
		},
	}

	if err := db.Create(&courses).Error; err != nil {
		return err
	}

	testimonials := []models.Testimonial{
		{
			StudentName: "أحمد محمد",
			Content:     "الأستاذ فضل عادل مدرس رياضة ممتاز، شرحه واضح ومفهوم. استفدت كثيراً من دورة أساسيات الرياضة",
			Rating:      5,
			CourseID:    &courses[0].ID,
		},
		{
			StudentName: "فاطمة علي",
			Content:     "أفضل مدرس رياضة قابلته. طريقة الشرح مميزة والتمارين واضحة وممتعة",
			Rating:      5,
			CourseID:    &courses[1].ID,
		},
		{
			StudentName: "محمد حسن",
			Content:     "دورة الرياضة الشاملة كانت رائعة. الأستاذ فضل يبسط المعلومات بطريقة ممتازة والأنشطة متنوعة",
			Rating:      5,
			CourseID:    &courses[2].ID,
		},
	}

	return db.Create(&testimonials).Error
}
