// Package config
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address        string
	DBPath         string
	JWTSecret      string
	JWTExpiry      time.Duration
	AdminUser      string
	AdminPassword  string
	WidgetAPIToken string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
}

func Load() *Config {
	godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "uptimebar.db"
	}

	jwtExpiry := 24 * time.Hour
	if raw := os.Getenv("JWT_EXPIRY"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			jwtExpiry = parsed
		}
	}

	adminUser := os.Getenv("ADMIN_USER")
	if adminUser == "" {
		adminUser = "admin"
	}

	origins := []string{"http://localhost:5000"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		Address:        addr,
		DBPath:         dbPath,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      jwtExpiry,
		AdminUser:      adminUser,
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		WidgetAPIToken: os.Getenv("WIDGET_API_TOKEN"),
		AllowedOrigins: origins,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
	}
}
