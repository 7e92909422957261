// Package log is the process-wide structured logger.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures Setup.
type Options struct {
	Level string // logrus level name; empty means "info"
	File  string // rotate into this file as well as stderr when set

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var std = logrus.New()

func init() {
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Setup applies opts to the shared logger.
func Setup(opts Options) error {
	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		level = l
	}
	std.SetLevel(level)

	if opts.File == "" {
		std.SetOutput(os.Stderr)
		return nil
	}
	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 7),
	}
	std.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Logger exposes the underlying logrus logger.
func Logger() *logrus.Logger { return std }

func WithField(key string, value any) *logrus.Entry { return std.WithField(key, value) }
func WithFields(fields logrus.Fields) *logrus.Entry { return std.WithFields(fields) }

func Debugf(format string, args ...any) { std.Debugf(format, args...) }
func Infof(format string, args ...any)  { std.Infof(format, args...) }
func Warnf(format string, args ...any)  { std.Warnf(format, args...) }
func Errorf(format string, args ...any) { std.Errorf(format, args...) }
func Info(args ...any)                  { std.Info(args...) }
func Error(args ...any)                 { std.Error(args...) }
