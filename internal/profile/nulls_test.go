package profile

import (
	"reflect"
	"testing"

	"salesreport/internal/frame"
)

func TestMissingByColumnRanksDescending(t *testing.T) {
	f, _ := frame.New("a", "b", "c")
	rows := [][]any{
		{nil, "x", nil},
		{nil, nil, "y"},
		{"z", "w", nil},
	}
	for _, r := range rows {
		if err := f.AppendRow(r); err != nil {
			t.Fatal(err)
		}
	}
	got := MissingByColumn(f)
	want := RankedCounts{
		{Column: "a", Missing: 2},
		{Column: "c", Missing: 2},
		{Column: "b", Missing: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if f.NumRows() != 3 {
		t.Fatal("input mutated")
	}
}

func TestMissingByColumnTiesKeepDatasetOrder(t *testing.T) {
	f, _ := frame.New("z_first", "a_second")
	_ = f.AppendRow([]any{nil, nil})
	got := MissingByColumn(f)
	if got[0].Column != "z_first" || got[1].Column != "a_second" {
		t.Fatalf("tie order not stable: %v", got)
	}
}

func TestTopClampsLength(t *testing.T) {
	r := RankedCounts{{Column: "a"}, {Column: "b"}}
	if got := len(r.Top(10)); got != 2 {
		t.Fatalf("Top(10) len = %d", got)
	}
	if got := len(r.Top(1)); got != 1 {
		t.Fatalf("Top(1) len = %d", got)
	}
}
