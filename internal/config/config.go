package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port          string
	DBPath        string
	TemplateDir   string
	StaticDir     string
	SecureCookie  bool
	LogLevel      string
	AdminUser     string
	AdminPassword string
}

// Load reads configuration from the environment, with a .env file as an
// optional source. Missing keys fall back to defaults.
func Load() *Config {
	// A missing .env file is fine; real env vars take precedence anyway.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "trips.db"),
		TemplateDir:   getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:     getEnv("STATIC_DIR", "web/static"),
		SecureCookie:  getEnvBool("SECURE_COOKIE", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AdminUser:     getEnv("ADMIN_USER", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultVal
	}
	return b
}
