// This file adds a lightweight linter/validator for Run values. It performs
// static checks over a decoded Run and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Run.
//
// Path is a dotted path into the config (e.g. "storage.kind"). Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Run. It does not mutate the run;
// callers decide whether warnings block execution.
func Validate(r Run) []Issue {
	var issues []Issue
	issues = append(issues, validateSource(r.Source)...)
	issues = append(issues, validateReport(r.Report)...)
	issues = append(issues, validateLog(r.Log)...)
	issues = append(issues, validateStorage(r.Storage)...)
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.path",
			Message:  "source.path must not be empty",
		})
	}

	known := map[string]struct{}{
		"latin1": {},
		"utf8":   {},
	}
	if _, ok := known[s.Encoding]; s.Encoding != "" && !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.encoding",
			Message:  fmt.Sprintf("unknown encoding %q; supported: latin1, utf8", s.Encoding),
		})
	}

	if len([]rune(s.Delimiter)) > 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.delimiter",
			Message:  fmt.Sprintf("delimiter %q must be a single character", s.Delimiter),
		})
	}

	return issues
}

func validateReport(r Report) []Issue {
	var issues []Issue

	if r.TopN < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.top_n",
			Message:  "top_n must not be negative",
		})
	}
	if r.TopN > 0 && r.TopN < 4 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "report.top_n",
			Message:  fmt.Sprintf("top_n=%d; the daily breakdown needs at least 4 ranked products and will be skipped", r.TopN),
		})
	}
	if strings.TrimSpace(r.OutDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.out_dir",
			Message:  "out_dir must not be empty",
		})
	}

	return issues
}

func validateLog(l Log) []Issue {
	var issues []Issue
	if strings.TrimSpace(l.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "log.path",
			Message:  "log.path must not be empty",
		})
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if !s.Enabled {
		return issues
	}

	known := map[string]struct{}{
		"postgres": {},
		"sqlite":   {},
	}
	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage is enabled but storage.kind is empty",
		})
	} else if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "storage.db.dsn must not be empty",
		})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  "storage.db.table must not be empty",
		})
	}

	return issues
}
