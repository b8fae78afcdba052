// Package config defines the canonical, JSON-serializable configuration model
// for the sales report pipeline. It is intentionally small, explicit, and
// dependency-free so a run can be described by a single JSON file (or by the
// built-in defaults when no file is given).
//
// Example (trimmed):
//
//	{
//	  "source":  { "path": "data/sales_data_sample.csv", "encoding": "latin1" },
//	  "report":  { "top_n": 10, "out_dir": "out" },
//	  "log":     { "path": "reporte_ventas.txt" },
//	  "storage": { "enabled": true, "kind": "sqlite", "db": { "dsn": "sales.db", "table": "sales_clean" } }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Run describes one full report run. It is the top-level object decoded from
// a config file.
type Run struct {
	// Source describes the input dataset.
	Source Source `json:"source"`

	// Report controls the analyses and where artifacts land.
	Report Report `json:"report"`

	// Log configures the append-only run log.
	Log Log `json:"log"`

	// Storage optionally mirrors the cleaned dataset into a database.
	Storage Storage `json:"storage"`
}

// Source identifies and describes the input file.
type Source struct {
	// Path is the local filesystem path to the input CSV.
	Path string `json:"path"`

	// Encoding names the input character encoding. Supported values:
	// "latin1" (default) and "utf8".
	Encoding string `json:"encoding"`

	// Delimiter is the CSV field separator; defaults to ",".
	Delimiter string `json:"delimiter"`
}

// Report controls analysis parameters and artifact placement.
type Report struct {
	// TopN is the size of the product rankings. Defaults to 10.
	TopN int `json:"top_n"`

	// OutDir is the directory for generated artifacts (tables, charts,
	// spreadsheets). Defaults to "out".
	OutDir string `json:"out_dir"`

	// Charts disables chart rendering when false is set explicitly via
	// "charts": false. Defaults to true.
	Charts *bool `json:"charts"`
}

// Log configures the append-only run log file.
type Log struct {
	// Path is the log file location. Defaults to "reporte_ventas.txt".
	Path string `json:"path"`
}

// Storage selects an optional database sink for the cleaned dataset.
type Storage struct {
	// Enabled switches the database load on. Off by default.
	Enabled bool `json:"enabled"`

	// Kind selects the backend: "sqlite" or "postgres".
	Kind string `json:"kind"`

	// DB carries the backend connection settings.
	DB DBConfig `json:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the connection string, passed through to the backend driver.
	DSN string `json:"dsn"`

	// Table is the destination table name (optionally schema-qualified for
	// Postgres, e.g. "public.sales_clean").
	Table string `json:"table"`
}

// Default returns the configuration used when no config file is given: read
// data/sales_data_sample.csv as latin1, write artifacts to out/, log to
// reporte_ventas.txt, no database sink.
func Default() Run {
	return Run{
		Source: Source{
			Path:      "data/sales_data_sample.csv",
			Encoding:  "latin1",
			Delimiter: ",",
		},
		Report: Report{
			TopN:   10,
			OutDir: "out",
		},
		Log: Log{
			Path: "reporte_ventas.txt",
		},
	}
}

// Load decodes a Run from the JSON file at path, layering it over Default()
// so omitted fields keep their default values.
func Load(path string) (Run, error) {
	run := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return run, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(b, &run); err != nil {
		return run, fmt.Errorf("decode config %s: %w", path, err)
	}
	run.applyDefaults()
	return run, nil
}

// applyDefaults restores defaults for fields the file set to their zero
// value.
func (r *Run) applyDefaults() {
	def := Default()
	if r.Source.Path == "" {
		r.Source.Path = def.Source.Path
	}
	if r.Source.Encoding == "" {
		r.Source.Encoding = def.Source.Encoding
	}
	if r.Source.Delimiter == "" {
		r.Source.Delimiter = def.Source.Delimiter
	}
	if r.Report.TopN == 0 {
		r.Report.TopN = def.Report.TopN
	}
	if r.Report.OutDir == "" {
		r.Report.OutDir = def.Report.OutDir
	}
	if r.Log.Path == "" {
		r.Log.Path = def.Log.Path
	}
}

// ChartsEnabled reports whether chart rendering is on; unset means on.
func (r Report) ChartsEnabled() bool {
	return r.Charts == nil || *r.Charts
}
