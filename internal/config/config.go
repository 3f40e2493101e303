package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Session tokens
	JWTSecret string
	JWTExpiry time.Duration

	// Seeded administrator (created only when the users table is empty)
	AdminName     string
	AdminEmail    string
	AdminPassword string
	AdminEmails   string

	// Server
	Port        string
	CORSOrigins string

	// Generated PDF archive (optional, S3 compatible)
	ArchiveEndpoint  string
	ArchiveAccessKey string
	ArchiveSecretKey string
	ArchiveBucket    string
	ArchiveRegion    string
	ArchiveUseSSL    bool

	LogRetention time.Duration
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pnc_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "pnc.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "12h"), 12*time.Hour),

		AdminName:     getEnv("ADMIN_NAME", "Administrador DAE"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@dae.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminEmails:   getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		ArchiveEndpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
		ArchiveAccessKey: getEnv("ARCHIVE_ACCESS_KEY", ""),
		ArchiveSecretKey: getEnv("ARCHIVE_SECRET_KEY", ""),
		ArchiveBucket:    getEnv("ARCHIVE_BUCKET", "pnc-forms"),
		ArchiveRegion:    getEnv("ARCHIVE_REGION", "us-east-1"),
		ArchiveUseSSL:    parseBool(getEnv("ARCHIVE_USE_SSL", "true")),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),
	}
}

// UsesSQLite reports whether the embedded SQLite driver was selected.
func (c *Config) UsesSQLite() bool {
	return c.DBDriver == "sqlite"
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// ArchiveEnabled reports whether generated PDFs should be copied to object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveEndpoint != "" && c.ArchiveAccessKey != "" && c.ArchiveSecretKey != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}
