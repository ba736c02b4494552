package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("EMAIL_USER", "screener@example.com")
	t.Setenv("EMAIL_PASS", "app-password")
	t.Setenv("HR_EMAIL", "hr@example.com")
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "GEMINI_MODEL", "GEMINI_TEMPERATURE", "SMTP_HOST",
		"SMTP_PORT", "SMTP_TLS_ENABLED", "MAX_FILE_SIZE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	setRequiredEnv(t)

	cfg := FromEnv()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 0.0001)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.TLSEnabled)
	assert.Equal(t, "smtp.gmail.com:465", cfg.SMTPAddr())
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_TEMPERATURE", "0.2")
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_TLS_ENABLED", "false")
	t.Setenv("MAX_FILE_SIZE", "1024")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.InDelta(t, 0.2, cfg.Gemini.Temperature, 0.0001)
	assert.Equal(t, "mail.example.com:2525", cfg.SMTPAddr())
	assert.False(t, cfg.SMTP.TLSEnabled)
	assert.Equal(t, int64(1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, "hr@example.com", cfg.SMTP.HREmail)
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("GEMINI_TEMPERATURE", "warm")
	t.Setenv("SMTP_TLS_ENABLED", "maybe")

	cfg := FromEnv()

	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 0.0001)
	assert.True(t, cfg.SMTP.TLSEnabled)
}

func TestValidate_ReportsMissingSecrets(t *testing.T) {
	cfg := &Config{
		SMTP:    SMTPConfig{Port: 465},
		Storage: StorageConfig{MaxFileSize: 1},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY is required")
	assert.Contains(t, err.Error(), "EMAIL_USER is required")
	assert.Contains(t, err.Error(), "EMAIL_PASS is required")
	assert.Contains(t, err.Error(), "HR_EMAIL is required")
}

func TestValidate_RejectsBadPort(t *testing.T) {
	cfg := &Config{
		Gemini:  GeminiConfig{APIKey: "k"},
		SMTP:    SMTPConfig{User: "u@example.com", Password: "p", HREmail: "hr@example.com", Port: 70000},
		Storage: StorageConfig{MaxFileSize: 1},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_PORT must be between 1 and 65535")
}
