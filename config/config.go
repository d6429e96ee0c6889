package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"portfolio-backend/pkg/email"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string
	// SMTP Configuration
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SMTPFromName    string
	SMTPSecure      bool // implicit TLS (port 465 style)
	SMTPTLSInsecure bool // skip certificate verification
	SMTPTimeout     time.Duration
	ContactEmailTo  string
	// HTTP surface
	CORSAllowOrigin string
	StaticDir       string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; production injects the environment directly
	_ = godotenv.Load()

	username := getEnv("SMTP_USERNAME", getEnv("SMTP_USER", ""))
	smtpPort := getEnv("SMTP_PORT", "587")

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// SMTP Configuration
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        smtpPort,
		SMTPUsername:    username,
		SMTPPassword:    getEnv("SMTP_PASSWORD", getEnv("SMTP_PASS", "")),
		SMTPFromName:    getEnv("SMTP_FROM_NAME", "Portfolio Contact Form"),
		SMTPSecure:      getEnvBool("SMTP_SECURE", smtpPort == "465"),
		SMTPTLSInsecure: getEnvBool("SMTP_TLS_INSECURE", false),
		SMTPTimeout:     time.Duration(getEnvInt("SMTP_TIMEOUT_SECONDS", 10)) * time.Second,
		ContactEmailTo:  getEnv("CONTACT_EMAIL_TO", username),
		// HTTP surface
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
		StaticDir:       strings.TrimRight(getEnv("STATIC_DIR", ""), "/"),
	}

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: must be an integer between 1 and 65535", cfg.SMTPPort)
	}

	if !cfg.IsEmailConfigured() {
		log.Println("WARNING: SMTP_USERNAME or SMTP_PASSWORD is missing. Contact form will answer 500.")
	}

	return cfg, nil
}

// IsEmailConfigured reports whether SMTP credentials are present.
func (c *Config) IsEmailConfigured() bool {
	return c.SMTPUsername != "" && c.SMTPPassword != ""
}

// SMTP returns the transport settings used to build a sender per request.
func (c *Config) SMTP() email.SMTPConfig {
	port, _ := strconv.Atoi(c.SMTPPort)
	return email.SMTPConfig{
		Host:        c.SMTPHost,
		Port:        port,
		Username:    c.SMTPUsername,
		Password:    c.SMTPPassword,
		Secure:      c.SMTPSecure,
		TLSInsecure: c.SMTPTLSInsecure,
		Timeout:     c.SMTPTimeout,
	}
}

// Recipient is the mailbox contact submissions are delivered to.
func (c *Config) Recipient() string {
	if c.ContactEmailTo != "" {
		return c.ContactEmailTo
	}
	return c.SMTPUsername
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
