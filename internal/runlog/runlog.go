// Package runlog implements the append-only run log shared by all pipeline
// stages. Every line is prefixed with a local timestamp and is written both
// to the log file and to a mirror writer (stdout in production).
//
// The logger is passed explicitly to each stage rather than living in a
// package-level variable, which keeps stages testable in isolation.
package runlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const stampLayout = "2006-01-02 15:04:05"

// Logger appends timestamped lines to a file and mirrors them to a writer.
// It is safe for use from a single goroutine; the mutex only guards against
// accidental cross-test sharing.
type Logger struct {
	mu     sync.Mutex
	path   string
	mirror io.Writer
	now    func() time.Time
}

// New returns a Logger appending to path and mirroring to mirror. The file
// is created on first write; existing content is never truncated, so
// successive runs accumulate in the same file.
func New(path string, mirror io.Writer) *Logger {
	if mirror == nil {
		mirror = os.Stdout
	}
	return &Logger{path: path, mirror: mirror, now: time.Now}
}

// Printf formats one log line, stamps it, appends it to the log file and
// mirrors it. File write errors are reported on the mirror instead of
// failing the run; the log is an artifact, not a dependency.
func (l *Logger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", l.now().Format(stampLayout), fmt.Sprintf(format, args...))
	fmt.Fprintln(l.mirror, line)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(l.mirror, "runlog: open %s: %v\n", l.path, err)
		return
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, line); err != nil {
		fmt.Fprintf(l.mirror, "runlog: write %s: %v\n", l.path, err)
	}
}

// WithClock overrides the timestamp source. Test hook.
func (l *Logger) WithClock(now func() time.Time) *Logger {
	l.now = now
	return l
}
