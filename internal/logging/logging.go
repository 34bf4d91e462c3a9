package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/config"
)

// New returns a colored debug logger in development and a JSON logger
// otherwise, both writing to stderr.
func New(development bool) *slog.Logger {
	if development {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

// NewConsole returns a logger for the interactive game. The terminal belongs
// to the board, so entries only go to the rotating file in cfg; with no file
// configured they are dropped.
func NewConsole(cfg *config.Log, development bool) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	level := logrus.InfoLevel
	if development {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if cfg.File == "" {
		return log, nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, err
	}
	log.AddHook(hook)

	return log, nil
}
