package export

import (
	"strings"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	n := DefaultNamer()

	cases := []struct {
		in, want string
	}{
		{"My Query!!", "My_Query"},
		{"   ", "results"},
		{"", "results"},
		{"mechanical design engineer new zealand", "mechanical_design_engineer_new_zealand"},
		{"a  b", "a_b"},
		{"__x__", "x"},
		{"café & bar", "caf_bar"},
		{"already-fine_name", "already-fine_name"},
		{"!!!", "results"},
	}
	for _, tc := range cases {
		if got := n.Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_BoundsLength(t *testing.T) {
	n := DefaultNamer()
	long := strings.Repeat("abc def ", 100)
	got := n.Normalize(long)
	if len([]rune(got)) > n.MaxLen {
		t.Fatalf("len = %d, want <= %d", len([]rune(got)), n.MaxLen)
	}
	if got == "" {
		t.Fatal("truncation produced blank output")
	}

	tiny := Namer{MaxLen: 4, Default: "results"}
	if got := tiny.Normalize("abcdefgh"); got != "abcd" {
		t.Fatalf("got %q, want \"abcd\"", got)
	}
}

func TestExportName(t *testing.T) {
	n := DefaultNamer()
	at := time.Date(2026, 8, 23, 14, 5, 0, 0, time.UTC)
	if got := n.ExportName("My Query!!", at); got != "My_Query_20260823-1405.csv" {
		t.Fatalf("got %q", got)
	}
	if got := n.ExportName("  ", at); got != "results_20260823-1405.csv" {
		t.Fatalf("got %q", got)
	}
}
