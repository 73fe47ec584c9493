package config

import "os"

// Config — все настройки приложения из переменных окружения.
// Дефолты подходят только для локальной разработки!
type Config struct {
	SecretKey    string
	DatabaseURL  string
	UploadFolder string
	TemplatesDir string
	Port         string

	AdminUser string
	AdminPass string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func Load() *Config {
	return &Config{
		SecretKey:    getenv("SECRET_KEY", "fadel-adel-math-teacher-2024"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		UploadFolder: getenv("UPLOAD_FOLDER", "./static/uploads"),
		TemplatesDir: getenv("TEMPLATES_DIR", "template"),
		Port:         getenv("PORT", "8080"),

		AdminUser: getenv("ADMIN_USER", "admin"),
		AdminPass: getenv("ADMIN_PASS", "password"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
