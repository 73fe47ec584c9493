package admin

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"

	"github.com/s/mathCourses/internal/storage"
)

// HandleExportStudents отдает весь список студентов CSV-файлом.
// Без фильтров и пагинации — всегда полная таблица.
func (s *Service) HandleExportStudents(w http.ResponseWriter, r *http.Request) {
	students, err := storage.ListStudents(s.DB)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=students.csv")

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"ID", "Name", "Email", "Phone", "Active", "Registered At"}); err != nil {
		log.Printf("Ошибка записи CSV: %v", err)
		return
	}

	for _, st := range students {
		active := "No"
		if st.Active {
			active = "Yes"
		}
		record := []string{
			strconv.FormatUint(uint64(st.ID), 10),
			st.Name,
			st.Email,
			st.Phone,
			active,
			st.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			log.Printf("Ошибка записи CSV: %v", err)
			return
		}
	}
}
