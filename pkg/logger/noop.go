package logger

// Noop discards everything.
type Noop struct{}

// NewNoop returns a logger that discards all messages.
func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) Debug(string, ...interface{})  {}
func (Noop) Info(string, ...interface{})   {}
func (Noop) Warn(string, ...interface{})   {}
func (Noop) Error(string, ...interface{})  {}
func (n Noop) WithComponent(string) Logger { return n }

var _ Logger = Noop{}
