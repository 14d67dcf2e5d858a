// Package logger: zerolog 전역 로거 설정
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config: 로깅 설정
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // console, json
}

// DefaultConfig: 기본 로깅 설정
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// Setup: 전역 로거 초기화
func Setup(cfg Config) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stdout
	if strings.ToLower(cfg.Format) != "json" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	return nil
}

// WithComponent: 컴포넌트 필드가 붙은 로거
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
