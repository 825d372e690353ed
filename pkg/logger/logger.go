// Package logger defines the logging abstraction used across certadmin
// and its console and no-op implementations.
package logger

// Level is the severity of a log message.
type Level int

const (
	// LevelDebug is for component-level internals such as debounce firings.
	LevelDebug Level = iota
	// LevelInfo is for operator-visible progress.
	LevelInfo
	// LevelWarn is for recoverable problems, e.g. a failed preview refresh.
	LevelWarn
	// LevelError is for failures of an operator action.
	LevelError
	// LevelQuiet suppresses all output.
	LevelQuiet
)

// String returns the name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger abstracts logging. msg is a lexicon key and is translated before
// output, so pass format arguments separately.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with component.
	WithComponent(component string) Logger
}
