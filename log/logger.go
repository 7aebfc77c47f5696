package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a small leveled logger writing to the terminal and,
// optionally, a size-rotated log file.
type Logger struct {
	writer io.Writer

	Name       string
	Level      Level
	TimeFormat string
	NoColor    bool
}

// Rotation bounds for the optional log file.
const (
	rotateMaxSize    = 64 // MiB
	rotateMaxBackups = 4
	rotateMaxAge     = 14 // days
)

// New creates a logger named name writing to stdout. When file is
// non-empty, output is duplicated into a rotated log file.
func New(name string, level Level, file string) *Logger {
	l := &Logger{
		Name:       name,
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05",
	}

	writers := []io.Writer{os.Stdout}
	if file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    rotateMaxSize,
			MaxBackups: rotateMaxBackups,
			MaxAge:     rotateMaxAge,
		})
	}
	l.writer = io.MultiWriter(writers...)

	return l
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return &Logger{writer: io.Discard, Level: Fatal, NoColor: true}
}

// Named derives a sub-logger sharing the same writer.
func (l *Logger) Named(name string) *Logger {
	sub := *l
	if l.Name != "" {
		sub.Name = l.Name + "/" + name
	} else {
		sub.Name = name
	}
	return &sub
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if level < l.Level {
		return
	}

	prefix := fmt.Sprintf("[%s] %-5s", time.Now().Format(l.TimeFormat), level)
	if l.Name != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, l.Name)
	}
	text := fmt.Sprintf(msg, args...)

	if l.NoColor {
		fmt.Fprintf(l.writer, "%s %s\n", prefix, text)
	} else {
		fmt.Fprintf(l.writer, "%s%s %s\033[0m\n", level.color(), prefix, text)
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(Debug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(Info, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(Warn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(Error, msg, args...) }
func (l *Logger) Fatal(msg string, args ...any) { l.log(Fatal, msg, args...) }
