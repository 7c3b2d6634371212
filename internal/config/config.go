package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage driver names
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	StorageDriver string
	StorageFile   string
	DBConn        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Disabled income rule from the source system, kept behind a switch.
	RejectNonPositiveIncome bool

	RateLimitRPS   float64
	RateLimitBurst int

	BackupSchedule string
	BackupDir      string

	CBRURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	NotifyEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageDriver: getEnv("STORAGE_DRIVER", DriverFile),
		StorageFile:   getEnv("STORAGE_FILE", "applications.json"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=loans password=loans dbname=loans sslmode=disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RejectNonPositiveIncome: getEnvBool("REJECT_NONPOSITIVE_INCOME", false),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),

		BackupSchedule: getEnv("BACKUP_SCHEDULE", ""),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),

		CBRURL: getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@demo-loan-app.local"),
		NotifyEmail:  getEnv("NOTIFY_EMAIL", ""),
	}

	switch cfg.StorageDriver {
	case DriverFile, DriverRedis, DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverFile && cfg.StorageFile == "" {
		return nil, fmt.Errorf("STORAGE_FILE is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
