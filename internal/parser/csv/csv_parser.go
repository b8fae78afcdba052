// Package csv parses delimited text into a frame.Frame. The parser is
// lenient by design: real-world sales exports carry ragged rows, stray
// quoting, and single-byte legacy encodings, so individual bad rows are
// skipped and counted rather than failing the load.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"salesreport/internal/frame"
)

// Options configures the CSV parser. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// Encoding names the source character encoding: "latin1" (default) or
	// "utf8". The sample exports this pipeline was built for are Latin-1.
	Encoding string

	// HeaderMap maps source header names to canonical keys (e.g. vendor
	// column spellings to snake_case). Applied after basic normalization,
	// only when HasHeader is true.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps per-row skip diagnostics so a structurally broken file
// does not flood stderr.
const skipLogLimit = 400

// Parse consumes records from r and returns a Frame of raw string cells
// (empty fields become nil, the missing marker) plus the number of rows
// skipped for parse errors or width mismatches.
func (p *Parser) Parse(r io.Reader) (*frame.Frame, int, error) {
	dec, err := decoderFor(p.opt.Encoding)
	if err != nil {
		return nil, 0, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec)
	}

	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	var headers []string
	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = normalizeHeaders(h, p.opt)
	}

	var f *frame.Frame
	var skipped int
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skipLogLimit {
				log.Printf("Skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if headers == nil {
			headers = make([]string, len(row))
			for i := range headers {
				headers[i] = fmt.Sprintf("col_%d", i)
			}
		}
		if f == nil {
			f, err = frame.New(headers...)
			if err != nil {
				return nil, 0, err
			}
		}
		if len(row) != len(headers) {
			if skipped < skipLogLimit {
				log.Printf("Skipping row %d: incorrect number of fields (expected %d, got %d)", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		vals := make([]any, len(row))
		for i, v := range row {
			vals[i] = emptyToNil(v)
		}
		if err := f.AppendRow(vals); err != nil {
			return nil, 0, err
		}
	}

	if f == nil {
		// Header-only or empty input still yields a usable, zero-row frame.
		if headers == nil {
			headers = []string{}
		}
		f, err = frame.New(headers...)
		if err != nil {
			return nil, 0, err
		}
	}
	return f, skipped, nil
}

// decoderFor maps an encoding name to a transformer, or nil for pass-through
// UTF-8.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "utf8", "utf-8":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// emptyToNil converts an empty string to nil; all other values are returned as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHeaders produces canonical header keys using HeaderMap (when
// provided) and simple normalization (lowercase, spaces to underscores). It
// also strips a UTF-8 BOM from the first cell if present.
func normalizeHeaders(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if opt.HeaderMap != nil {
			if m, ok := opt.HeaderMap[c]; ok {
				res[i] = m
				continue
			}
		}
		res[i] = strings.ReplaceAll(strings.ToLower(c), " ", "_")
	}
	return res
}
