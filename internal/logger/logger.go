// Package logger provides the small leveled logger used by the command-line
// tools.
package logger

import (
	"io"
	"log"
)

// Logger writes leveled, printf-style messages.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l       *log.Logger
	verbose bool
}

// New returns a Logger writing to w.  Debug messages are dropped unless
// verbose is true.
func New(w io.Writer, prefix string, verbose bool) Logger {
	return &stdLogger{
		l:       log.New(w, prefix, log.LstdFlags),
		verbose: verbose,
	}
}

func (s *stdLogger) Debugf(format string, v ...any) {
	if s.verbose {
		s.l.Printf("[DEBUG] "+format, v...)
	}
}

func (s *stdLogger) Infof(format string, v ...any)  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }
