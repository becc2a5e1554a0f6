package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

// Logger is the leveled, key/value logging contract used across modules.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Named(name string) Logger
}

type Options struct {
	Name   string
	Level  string
	JSON   bool
	Output io.Writer
}

type hclogLogger struct {
	l hclog.Logger
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclogLogger{l: hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})}
}

func Discard() Logger {
	return hclogLogger{l: hclog.NewNullLogger()}
}

func (h hclogLogger) Debug(msg string, args ...any) { h.l.Debug(msg, args...) }
func (h hclogLogger) Info(msg string, args ...any)  { h.l.Info(msg, args...) }
func (h hclogLogger) Warn(msg string, args ...any)  { h.l.Warn(msg, args...) }
func (h hclogLogger) Error(msg string, args ...any) { h.l.Error(msg, args...) }

func (h hclogLogger) Named(name string) Logger {
	return hclogLogger{l: h.l.Named(name)}
}
