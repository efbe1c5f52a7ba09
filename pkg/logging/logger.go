package logging

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"

	"miniblog/pkg/config"
)

// New builds the process logger from cfg. The returned closer releases the
// rotating log file, if one was opened.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer) {
	var console io.Writer = os.Stderr
	if cfg.Pretty {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}

	if !cfg.LogToFile {
		return NewLogger(cfg.Debug, console), nopCloser{}
	}

	fileLogger := &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	var output io.Writer = fileLogger
	if cfg.Debug {
		output = zerolog.MultiLevelWriter(fileLogger, console)
	}
	logger := NewLogger(cfg.Debug, output)
	logger.Info().Str("path", cfg.LogFilePath).Msg("logging to file")
	return logger, fileLogger
}

// NewLogger creates a zerolog logger writing to output at info level, or
// debug level when debug is set.
func NewLogger(debug bool, output io.Writer) zerolog.Logger {
	if output == nil {
		output = os.Stderr
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// WithComponent returns a logger with the component field set
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
