package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	SMTP    SMTPConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

// SMTPConfig holds the mail submission account. User doubles as the From
// address of every outbound message.
type SMTPConfig struct {
	User       string
	Password   string
	Host       string
	Port       int
	TLSEnabled bool
	HREmail    string
}

type StorageConfig struct {
	MaxFileSize int64
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
// without touching any .env file.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.7),
		},
		SMTP: SMTPConfig{
			User:       getEnv("EMAIL_USER", ""),
			Password:   getEnv("EMAIL_PASS", ""),
			Host:       getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:       getEnvAsInt("SMTP_PORT", 465),
			TLSEnabled: getEnvAsBool("SMTP_TLS_ENABLED", true),
			HREmail:    getEnv("HR_EMAIL", ""),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// Validate reports every required setting that is missing.
func (c *Config) Validate() error {
	var errs []error

	if c.Gemini.APIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required"))
	}
	if c.SMTP.User == "" {
		errs = append(errs, errors.New("EMAIL_USER is required"))
	}
	if c.SMTP.Password == "" {
		errs = append(errs, errors.New("EMAIL_PASS is required"))
	}
	if c.SMTP.HREmail == "" {
		errs = append(errs, errors.New("HR_EMAIL is required"))
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("SMTP_PORT must be between 1 and 65535, got %d", c.SMTP.Port))
	}
	if c.Storage.MaxFileSize <= 0 {
		errs = append(errs, errors.New("MAX_FILE_SIZE must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTP.Host, c.SMTP.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
