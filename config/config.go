package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/table-booking/utils"
)

type DBConfig struct {
	Driver          string // mysql, postgres, sqlite
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // menit
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled -> email hanya dikirim jika host diisi
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type AdminSeed struct {
	Username string
	Email    string
	Password string
}

type Config struct {
	Port       string
	GinMode    string
	JWTSecret  string
	TokenTTL   time.Duration
	CORSOrigin string
	CSP        string
	HSTSMaxAge int
	RateRPS    float64
	RateBurst  int
	DB         DBConfig
	SMTP       SMTPConfig
	Admin      AdminSeed
}

// Load membaca .env (jika ada) lalu environment variable dengan nilai default
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found, using environment only")
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		utils.InfoLogger.Println("Warning: JWT_SECRET not set, using development secret")
		secret = "dev-table-booking-secret"
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		JWTSecret:  secret,
		TokenTTL:   time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		CORSOrigin: getEnv("CORS_ORIGIN", "http://127.0.0.1:5500"),
		CSP:        getEnv("SECURITY_CSP", ""),
		HSTSMaxAge: getEnvInt("SECURITY_HSTS_MAX_AGE", 0),
		RateRPS:    getEnvFloat("RATE_LIMIT_RPS", 10),
		RateBurst:  getEnvInt("RATE_LIMIT_BURST", 50),
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "mysql"),
			Host:            getEnv("DB_HOST", "127.0.0.1"),
			Port:            getEnvInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "table_booking"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			SQLitePath:      getEnv("SQLITE_PATH", "table_booking.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@table-booking.local"),
		},
		Admin: AdminSeed{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@restaurant.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		utils.ErrorLogger.Printf("Invalid integer for %s: %q, using %d", key, v, def)
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		utils.ErrorLogger.Printf("Invalid number for %s: %q, using %v", key, v, def)
	}
	return def
}
