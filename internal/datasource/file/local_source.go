// Package file implements the local filesystem data source feeding the
// pipeline. The input is a single delimited text file read start to finish
// once per run.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound marks a missing input file. The orchestrator treats this as
// fatal: the run terminates without producing any artifact.
var ErrNotFound = errors.New("input file not found")

// Local is a filesystem data source bound to one path.
type Local struct{ path string }

// NewLocal returns a Local data source for path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the configured path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading. A nonexistent path yields an
// error wrapping ErrNotFound; other filesystem errors are wrapped with the
// path for context. When the context is already done, Open returns its error
// without touching the filesystem.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.path)
		}
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	adviseSequential(f)
	return f, nil
}
