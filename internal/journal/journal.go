// Package journal keeps an append-only record of finished games.
package journal

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sweeper/internal/mines"
)

type Config struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Journal implements [mines.Observer] and [mines.Starter] and writes one entry per game start
// and per finished game. A journal without a path discards everything.
type Journal struct {
	log *logrus.Entry
}

func New(cfg Config) (*Journal, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.InfoLevel)

	if cfg.Path != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Level:      logrus.InfoLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open journal %s: %w", cfg.Path, err)
		}
		logger.AddHook(hook)
	}

	return NewWithLogger(logger), nil
}

func NewWithLogger(logger *logrus.Logger) *Journal {
	return &Journal{log: logrus.NewEntry(logger)}
}

// With returns a journal that tags every entry with key.
func (j *Journal) With(key string, value any) *Journal {
	return &Journal{log: j.log.WithField(key, value)}
}

func (j *Journal) fields(b *mines.Board) *logrus.Entry {
	return j.log.WithFields(logrus.Fields{
		"width":  b.Width(),
		"height": b.Height(),
		"mines":  b.MineCount(),
		"moves":  b.Moves(),
		"games":  b.Games(),
	})
}

// Started implements [mines.Starter].
func (j *Journal) Started(b *mines.Board) {
	j.fields(b).Info("game started")
}

// Redraw is a no-op; only outcomes are journaled.
func (j *Journal) Redraw(*mines.Board) {}

func (j *Journal) GameOver(b *mines.Board, outcome mines.Outcome) {
	j.fields(b).
		WithField("outcome", outcome.String()).
		WithField("flags", b.FlagsPlaced()).
		Info("game over")
}
