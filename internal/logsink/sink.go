// SPDX-License-Identifier: MPL-2.0

package logsink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix is the record prefix written by the production sink.
const Prefix = "xafmodel"

type (
	// Sink receives diagnostic lines. Implementations must be safe to call
	// from the launcher's exit observer goroutine.
	Sink interface {
		AppendLine(line string)
	}

	// Func adapts a plain function to the Sink interface.
	Func func(line string)

	discard struct{}

	// Logger is the charmbracelet/log backed Sink.
	Logger struct {
		loggers []*log.Logger
		closers []io.Closer
	}
)

// Discard is a Sink that drops every line.
var Discard Sink = discard{}

func (discard) AppendLine(string) {}

// AppendLine calls f(line).
func (f Func) AppendLine(line string) { f(line) }

// New creates a Logger writing to each of the given writers. Nil writers are
// skipped; with no writers the Logger behaves like Discard.
func New(writers ...io.Writer) *Logger {
	l := &Logger{}
	for _, w := range writers {
		if w == nil {
			continue
		}
		l.loggers = append(l.loggers, log.NewWithOptions(w, log.Options{
			Prefix:          Prefix,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Level:           log.DebugLevel,
		}))
	}
	return l
}

// Open creates a Logger that writes to console when it is non-nil (the
// CLI passes stderr in verbose mode) and appends to logFile when it is
// non-empty. The caller must Close the returned Logger to release the file.
func Open(console io.Writer, logFile string) (*Logger, error) {
	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	var f *os.File
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		var err error
		f, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
	}

	l := New(writers...)
	if f != nil {
		l.closers = append(l.closers, f)
	}
	return l, nil
}

// AppendLine writes line as an info record to every configured writer.
func (l *Logger) AppendLine(line string) {
	for _, lg := range l.loggers {
		lg.Info(line)
	}
}

// Close releases files opened by Open.
func (l *Logger) Close() error {
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.closers = nil
	return firstErr
}

// Printf formats according to a format specifier and appends the result.
func Printf(s Sink, format string, args ...any) {
	if s == nil {
		return
	}
	s.AppendLine(fmt.Sprintf(format, args...))
}
