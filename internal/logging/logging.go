// Package logging builds the application's logrus logger, rotating log
// files on disk via lumberjack the way the teacher's stack is wired for it
// (see go.mod: sirupsen/logrus + natefinch/lumberjack).
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"uadetect/internal/config"
)

// New builds a logrus.Logger that writes to both stdout and a rotating
// file under cfg.GetLogDirectory(), sized per cfg's rotation knobs.
func New(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.GetLogDirectory() == "" {
		log.SetOutput(os.Stdout)
		return log
	}

	if err := os.MkdirAll(cfg.GetLogDirectory(), 0o755); err != nil {
		log.WithError(err).Warn("could not create log directory, logging to stdout only")
		log.SetOutput(os.Stdout)
		return log
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.GetLogDirectory(), "uadetectd.log"),
		MaxSize:    cfg.GetLogMaxSizeMB(),
		MaxBackups: cfg.GetLogMaxBackups(),
		MaxAge:     cfg.GetLogMaxAgeDays(),
		Compress:   true,
	}

	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return log
}
