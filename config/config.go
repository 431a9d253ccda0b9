package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	LogLevel             slog.Level
	ProgressBuffer       int
	StrictScores         bool
	TelegramToken        string
	TelegramChatID       int64
	TelegramProgressStep float64
}

// Load читает конфигурацию из окружения
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		Addr:                 getenv("MASKCMP_ADDR", ":8080"),
		TelegramToken:        os.Getenv("TELEGRAM_TOKEN"),
		ProgressBuffer:       64,
		TelegramProgressStep: 25,
	}

	level, err := ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if v := os.Getenv("PROGRESS_BUFFER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("PROGRESS_BUFFER: invalid value %q", v)
		}
		cfg.ProgressBuffer = n
	}

	if v := os.Getenv("STRICT_SCORES"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("STRICT_SCORES: %w", err)
		}
		cfg.StrictScores = strict
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if v := os.Getenv("TELEGRAM_PROGRESS_STEP"); v != "" {
		step, err := strconv.ParseFloat(v, 64)
		if err != nil || step <= 0 || step > 100 {
			return nil, fmt.Errorf("TELEGRAM_PROGRESS_STEP: invalid value %q", v)
		}
		cfg.TelegramProgressStep = step
	}

	return cfg, nil
}

// TelegramEnabled сообщает, настроены ли уведомления в Telegram
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// ParseLevel разбирает уровень логирования; пустая строка означает info
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL: unknown level %q", s)
	}
}

// NewLogger текстовый slog-логгер в stderr
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
