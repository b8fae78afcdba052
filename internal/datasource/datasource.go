// Package datasource abstracts where the raw sales export comes from. The
// pipeline only ever consumes an opened reader, so alternative sources can
// be added without touching the loader.
package datasource

import (
	"context"
	"io"
)

// Source yields the raw input stream for one run.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
