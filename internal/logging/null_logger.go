package logging

import "github.com/vvka-141/myload/pkg/myload"

var (
	_ myload.Logger = (*ConsoleLogger)(nil)
	_ myload.Logger = (*NullLogger)(nil)
)

// NullLogger discards everything. Used by tests and library callers that
// only care about returned errors.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}

func (l *NullLogger) Info(format string, args ...interface{}) {}

func (l *NullLogger) Error(format string, args ...interface{}) {}
