package runlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 7, 14, 5, 9, 0, time.Local)
}

func TestPrintfStampsAndMirrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var mirror bytes.Buffer
	l := New(path, &mirror).WithClock(fixedClock)

	l.Printf("removed %d duplicates", 12)

	want := "[2024-03-07 14:05:09] removed 12 duplicates\n"
	if mirror.String() != want {
		t.Fatalf("mirror = %q, want %q", mirror.String(), want)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(b) != want {
		t.Fatalf("file = %q, want %q", string(b), want)
	}
}

func TestPrintfAppendsAcrossLoggers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	New(path, &bytes.Buffer{}).WithClock(fixedClock).Printf("first run")
	New(path, &bytes.Buffer{}).WithClock(fixedClock).Printf("second run")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (append, not truncate): %q", len(lines), string(b))
	}
}
