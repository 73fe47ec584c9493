package uploads

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Разрешенные расширения для картинок (обложки курсов, аватары).
var allowedImageExt = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedImage проверяет расширение файла по белому списку.
func AllowedImage(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return allowedImageExt[strings.ToLower(filename[i+1:])]
}

// SecureFilename приводит имя файла к безопасному виду:
// отбрасываем путь, пробелы -> подчеркивания, остальное — только [A-Za-z0-9_.-].
func SecureFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// Save сохраняет загруженный файл в dir и возвращает имя, под которым он лежит.
// При совпадении имен добавляем короткий uuid-префикс, чтобы не затереть чужой файл.
func Save(fh *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := SecureFilename(fh.Filename)
	if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
		name = uuid.NewString()[:8] + "_" + name
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Remove удаляет файл из папки загрузок. Ошибка не критична:
// запись в БД все равно удаляется, поэтому только логируем.
func Remove(dir, name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		log.Printf("⚠️ Не удалось удалить файл %s: %v", name, err)
	}
}
