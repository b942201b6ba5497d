package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application.
type Config struct {
	// Server
	ServerAddr string

	// Database
	DBUser     string
	DBPassword string
	DBAddr     string
	DBName     string

	// SMTP
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Invitations older than this are swept by the background job.
	InvitationValidity time.Duration
}

// Load reads .env if present and resolves the process configuration.
func Load() *Config {
	configOnce.Do(func() {
		_ = godotenv.Load()

		config = &Config{
			ServerAddr:         getEnv("SERVER_ADDR", ":80"),
			DBUser:             getEnv("DB_USER", "root"),
			DBPassword:         getEnv("DB_PASSWORD", ""),
			DBAddr:             getEnv("DB_ADDR", "127.0.0.1:3306"),
			DBName:             getEnv("DB_NAME", "casahub"),
			SMTPHost:           getEnv("SMTP_HOST", "localhost"),
			SMTPPort:           getEnv("SMTP_PORT", "465"),
			SMTPUser:           getEnv("SMTP_USER", ""),
			SMTPPass:           getEnv("SMTP_PASS", ""),
			MailFrom:           getEnv("MAIL_FROM", "no-reply@casahub.local"),
			InvitationValidity: time.Duration(getEnvInt("INVITATION_VALIDITY_DAYS", 14)) * 24 * time.Hour,
		}
	})

	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
