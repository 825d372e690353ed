package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// Console writes log lines to a pair of writers, warnings and errors to
// the second one.
type Console struct {
	level     Level
	component string
	color     bool
	stamp     bool
	mu        *sync.Mutex
	out, err  io.Writer
}

// NewConsole logs to stdout/stderr. Colour is enabled when stdout is a terminal.
func NewConsole(level Level) *Console {
	return &Console{
		level: level,
		color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		mu:    &sync.Mutex{},
		out:   os.Stdout,
		err:   os.Stderr,
	}
}

// NewWriter logs every level to w without colour and with timestamps.
// Used while the terminal UI owns the screen.
func NewWriter(level Level, w io.Writer) *Console {
	return &Console{
		level: level,
		stamp: true,
		mu:    &sync.Mutex{},
		out:   w,
		err:   w,
	}
}

// OpenFile appends to path and returns a writer-backed logger plus the
// file to close on exit.
func OpenFile(level Level, path string) (*Console, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return NewWriter(level, f), f, nil
}

// Debug logs a debug message.
func (l *Console) Debug(msg string, args ...interface{}) {
	if l.level > LevelDebug {
		return
	}
	l.log(LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *Console) Info(msg string, args ...interface{}) {
	if l.level > LevelInfo {
		return
	}
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning.
func (l *Console) Warn(msg string, args ...interface{}) {
	if l.level > LevelWarn {
		return
	}
	l.log(LevelWarn, msg, args...)
}

// Error logs an error.
func (l *Console) Error(msg string, args ...interface{}) {
	if l.level > LevelError {
		return
	}
	l.log(LevelError, msg, args...)
}

// WithComponent returns a logger with the component prefix set.
func (l *Console) WithComponent(component string) Logger {
	c := *l
	c.component = component
	return &c
}

func (l *Console) log(level Level, msg string, args ...interface{}) {
	translated := l10n.F(msg, args...)

	var output string
	if l.component != "" {
		if l.color {
			output = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, translated)
		} else {
			output = fmt.Sprintf("[%s] %s", l.component, translated)
		}
	} else {
		output = translated
	}

	if l.color {
		switch level {
		case LevelDebug:
			output = colorGray + output + colorReset
		case LevelWarn:
			output = colorYellow + output + colorReset
		case LevelError:
			output = colorRed + output + colorReset
		}
	}
	if l.stamp {
		output = fmt.Sprintf("%s %-5s %s", time.Now().Format(time.RFC3339), level, output)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level >= LevelWarn {
		fmt.Fprintln(l.err, output)
	} else {
		fmt.Fprintln(l.out, output)
	}
}

var _ Logger = (*Console)(nil)
