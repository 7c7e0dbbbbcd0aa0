package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization

	"homework_status_bot/internal/domain/homework"

	"github.com/joho/godotenv"
)

const DefaultPracticumEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Names of the mandatory environment variables.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// Credentials are the three secrets the bot cannot run without.
type Credentials struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string
}

// AppConfig holds all configuration for the application.
// It is built once by Load and never modified afterwards.
type AppConfig struct {
	Credentials
	PracticumEndpoint string
	AdvanceCursor     bool   // move the poll cursor forward after successful iterations
	DatabaseURL       string // optional, enables the delivery journal
	LogLevel          string
	Environment       string
}

// ConfigurationError lists every mandatory variable that is missing or empty.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "Отсутствуют обязательные переменные окружения: " + strings.Join(e.Missing, ", ")
}

func (e *ConfigurationError) Kind() homework.Kind { return homework.KindConfiguration }

// CheckCredentials returns a *ConfigurationError naming each absent secret, or nil.
func CheckCredentials(c Credentials) error {
	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{EnvPracticumToken, c.PracticumToken},
		{EnvTelegramToken, c.TelegramToken},
		{EnvTelegramChatID, c.TelegramChatID},
	} {
		if strings.TrimSpace(v.value) == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Credentials: Credentials{
			PracticumToken: os.Getenv(EnvPracticumToken),
			TelegramToken:  os.Getenv(EnvTelegramToken),
			TelegramChatID: os.Getenv(EnvTelegramChatID),
		},
	}
	if err := CheckCredentials(cfg.Credentials); err != nil {
		return nil, err
	}

	cfg.PracticumEndpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultPracticumEndpoint
	}

	if raw := os.Getenv("ADVANCE_CURSOR"); raw != "" {
		advance, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ADVANCE_CURSOR: %w", err)
		}
		cfg.AdvanceCursor = advance
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}
