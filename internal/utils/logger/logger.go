package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// New создает логгер для окружения env с уровнем по умолчанию
func New(env string) *slog.Logger {
	return NewLevel(env, "")
}

// NewLevel создает логгер для окружения env.
// Непустой level переопределяет уровень окружения.
func NewLevel(env, level string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal, "":
		log = setupPrettySlog(levelOr(level, slog.LevelDebug))
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelOr(level, slog.LevelDebug)}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelOr(level, slog.LevelInfo)}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelOr(level, slog.LevelInfo)}),
		)
	}

	return log
}

// Discard возвращает логгер, который ничего не пишет. Нужен тестам.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

func levelOr(level string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}
